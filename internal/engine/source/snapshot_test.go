package source

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	s, err := OpenSnapshotStore(filepath.Join(t.TempDir(), "state", "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSnapshotEmpty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Latest(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotSaveLatest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	doc := loadTestdata(t)

	version, err := s.Save(ctx, doc, "file")
	require.NoError(t, err)

	snap, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, version, snap.Version)
	assert.Equal(t, "file", snap.Source)
	assert.Equal(t, doc, snap.Document)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestSnapshotSkipsSameVersion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	doc := loadTestdata(t)

	_, err := s.Save(ctx, doc, "file")
	require.NoError(t, err)
	_, err = s.Save(ctx, doc, "file")
	require.NoError(t, err)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSnapshotPrunes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last string
	for i := 0; i < snapshotKeep+3; i++ {
		doc := validDoc()
		doc.Profile.Headline = fmt.Sprintf("rev %d", i)
		v, err := s.Save(ctx, doc, "http")
		require.NoError(t, err)
		last = v
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshotKeep, n)

	snap, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, last, snap.Version)
	assert.Equal(t, fmt.Sprintf("rev %d", snapshotKeep+2), snap.Document.Profile.Headline)
}
