package source

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource returns doc or err and counts calls.
type stubSource struct {
	doc   *Document
	err   error
	calls atomic.Int32
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) (*Document, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func TestLoaderNotLoaded(t *testing.T) {
	l := NewLoader(&stubSource{err: errors.New("down")}, nil)
	_, err := l.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, "", l.Version())

	assert.Error(t, l.Refresh(context.Background()))
	_, err = l.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestLoaderLoadsAndSnapshots(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	l := NewLoader(&stubSource{doc: loadTestdata(t)}, store)

	require.NoError(t, l.Refresh(ctx))
	st, err := l.Current()
	require.NoError(t, err)
	assert.Equal(t, "stub", st.Origin)
	assert.Equal(t, st.Version, l.Version())

	snap, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Version, snap.Version)
}

func TestLoaderFallsBackToSnapshot(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	version, err := store.Save(ctx, loadTestdata(t), "file")
	require.NoError(t, err)

	l := NewLoader(&stubSource{err: errors.New("connection refused")}, store)
	require.NoError(t, l.Refresh(ctx))

	st, err := l.Current()
	require.NoError(t, err)
	assert.Equal(t, OriginSnapshot, st.Origin)
	assert.Equal(t, version, st.Version)
}

func TestLoaderNoSnapshotJoinsErrors(t *testing.T) {
	l := NewLoader(&stubSource{err: errors.New("connection refused")}, openTestStore(t))
	err := l.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.ErrorContains(t, err, "connection refused")
}

func TestLoaderRejectsInvalidDocument(t *testing.T) {
	doc := validDoc()
	doc.Experiences[0].StartMonth = 0
	l := NewLoader(&stubSource{doc: doc}, nil)

	err := l.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrInvalidDocument)
	_, err = l.Current()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestLoaderKeepsCurrentOnFailure(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{doc: loadTestdata(t)}
	l := NewLoader(src, nil)
	require.NoError(t, l.Refresh(ctx))
	before := l.Version()

	src.err = errors.New("timeout")
	assert.Error(t, l.Refresh(ctx))
	assert.Equal(t, before, l.Version())
}

func TestLoaderRefreshLoop(t *testing.T) {
	src := &stubSource{doc: validDoc()}
	l := NewLoader(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.RefreshLoop(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return src.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RefreshLoop did not stop after cancel")
	}
	assert.NotEmpty(t, l.Version())
}

func TestLoaderRefreshLoopDisabled(t *testing.T) {
	src := &stubSource{doc: validDoc()}
	NewLoader(src, nil).RefreshLoop(context.Background(), 0)
	assert.Equal(t, int32(0), src.calls.Load())
}

// flakySource fails the first `failures` loads, then returns doc.
type flakySource struct {
	doc      *Document
	failures int32
	calls    atomic.Int32
}

func (s *flakySource) Name() string { return "flaky" }

func (s *flakySource) Load(context.Context) (*Document, error) {
	if s.calls.Add(1) <= s.failures {
		return nil, errors.New("dial tcp: connection refused")
	}
	return s.doc, nil
}

func TestLoaderRecoversWhenPrimaryComesBack(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	_, err := store.Save(ctx, validDoc(), "file")
	require.NoError(t, err)

	src := &flakySource{doc: loadTestdata(t), failures: 2}
	l := NewLoader(src, store)

	require.NoError(t, l.Refresh(ctx))
	st, err := l.Current()
	require.NoError(t, err)
	assert.Equal(t, OriginSnapshot, st.Origin)

	assert.Error(t, l.Refresh(ctx))

	require.NoError(t, l.Refresh(ctx))
	st, err = l.Current()
	require.NoError(t, err)
	assert.Equal(t, "flaky", st.Origin)
	assert.Len(t, st.Document.Experiences, 3)
}

func TestLoaderRefreshLoopRecovers(t *testing.T) {
	src := &flakySource{doc: validDoc(), failures: 3}
	l := NewLoader(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.RefreshLoop(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		st, err := l.Current()
		return err == nil && st.Origin == "flaky"
	}, time.Second, 5*time.Millisecond)
}

func TestLoaderSnapshotCount(t *testing.T) {
	ctx := context.Background()
	n, err := NewLoader(nil, nil).SnapshotCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	l := NewLoader(&stubSource{doc: validDoc()}, openTestStore(t))
	require.NoError(t, l.Refresh(ctx))
	n, err = l.SnapshotCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
