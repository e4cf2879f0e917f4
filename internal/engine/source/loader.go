package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anatolykoptev/go_portfolio/internal/engine"
)

// OriginSnapshot marks a document restored from the snapshot store.
const OriginSnapshot = "snapshot"

// State is an immutable view of the loaded document. Callers must not
// modify Document.
type State struct {
	Document *Document
	Version  string
	Origin   string
	LoadedAt time.Time
}

// Loader owns the current document: it loads from the primary source,
// validates, snapshots, and falls back to the last snapshot on failure.
type Loader struct {
	primary   Source         // nil = snapshot only
	snapshots *SnapshotStore // nil = no fallback

	mu    sync.RWMutex
	state *State
}

// NewLoader creates a loader. Either argument may be nil; with no primary
// source every Refresh fails over to the snapshot store.
func NewLoader(primary Source, snapshots *SnapshotStore) *Loader {
	return &Loader{primary: primary, snapshots: snapshots}
}

// Current returns the loaded state or ErrNotLoaded.
func (l *Loader) Current() (*State, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state == nil {
		return nil, ErrNotLoaded
	}
	return l.state, nil
}

// Version returns the current document version, or "" before the first load.
func (l *Loader) Version() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state == nil {
		return ""
	}
	return l.state.Version
}

// SnapshotCount returns how many snapshots are stored, or 0 without a
// snapshot store.
func (l *Loader) SnapshotCount(ctx context.Context) (int, error) {
	if l.snapshots == nil {
		return 0, nil
	}
	return l.snapshots.Count(ctx)
}

func (l *Loader) set(s *State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// Refresh reloads the document. A failed reload keeps the current document;
// with nothing loaded yet it falls back to the latest snapshot.
func (l *Loader) Refresh(ctx context.Context) error {
	engine.IncrLoadRequests()
	return engine.TrackOperation(ctx, "source.refresh", func(ctx context.Context) error {
		err := l.loadPrimary(ctx)
		if err == nil {
			return nil
		}
		engine.IncrLoadErrors()

		if _, cerr := l.Current(); cerr == nil {
			slog.Warn("source: refresh failed, keeping current document", slog.Any("error", err))
			return err
		}
		if l.snapshots == nil {
			return err
		}

		snap, serr := l.snapshots.Latest(ctx)
		if serr != nil {
			return errors.Join(err, serr)
		}
		engine.IncrSnapshotFallbacks()
		slog.Warn("source: primary failed, serving snapshot",
			slog.Any("error", err),
			slog.String("version", snap.Version),
			slog.Time("fetched_at", snap.FetchedAt))
		l.set(&State{
			Document: snap.Document,
			Version:  snap.Version,
			Origin:   OriginSnapshot,
			LoadedAt: time.Now(),
		})
		return nil
	})
}

func (l *Loader) loadPrimary(ctx context.Context) error {
	if l.primary == nil {
		return errors.New("source: no primary source configured")
	}
	doc, err := l.primary.Load(ctx)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%s source: %w", l.primary.Name(), err)
	}

	version, err := doc.Version()
	if err != nil {
		return err
	}
	if l.snapshots != nil {
		if _, err := l.snapshots.Save(ctx, doc, l.primary.Name()); err != nil {
			slog.Warn("source: snapshot save failed", slog.Any("error", err))
		}
	}

	if prev := l.Version(); prev != version {
		slog.Info("source: document loaded",
			slog.String("source", l.primary.Name()),
			slog.String("version", version),
			slog.Int("experiences", len(doc.Experiences)))
	}
	l.set(&State{
		Document: doc,
		Version:  version,
		Origin:   l.primary.Name(),
		LoadedAt: time.Now(),
	})
	return nil
}

// RefreshLoop calls Refresh every interval until ctx is done.
// A non-positive interval returns immediately.
func (l *Loader) RefreshLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Refresh(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("source: periodic refresh failed", slog.Any("error", err))
			}
		}
	}
}
