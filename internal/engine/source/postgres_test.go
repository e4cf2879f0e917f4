package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostgresSourceRequiresURL(t *testing.T) {
	s := NewPostgresSource("")
	_, err := s.Load(context.Background())
	assert.ErrorContains(t, err, "DATABASE_URL is required")
	s.Close()
}

func TestPostgresSourceRetriesConnect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := NewPostgresSource("postgres://portfolio@127.0.0.1:1/portfolio?connect_timeout=1")
	defer s.Close()

	for i := 0; i < 2; i++ {
		_, err := s.Load(ctx)
		assert.ErrorContains(t, err, "postgres source")
		s.mu.Lock()
		assert.Nil(t, s.pool, "a failed connect must not be cached")
		s.mu.Unlock()
	}
}

func TestPostgresSourceBadURL(t *testing.T) {
	s := NewPostgresSource("postgres://%zz")
	_, err := s.Load(context.Background())
	assert.ErrorContains(t, err, "parse DATABASE_URL")
}
