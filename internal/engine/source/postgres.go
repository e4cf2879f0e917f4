package source

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anatolykoptev/go_portfolio/internal/engine/career"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// PostgresSource reads the profile and experiences from PostgreSQL.
// The pool is opened on first use and retried on later calls until it
// succeeds, so a database that is down at startup is picked up once it
// comes back.
type PostgresSource struct {
	databaseURL string

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgresSource returns a source that connects lazily.
func NewPostgresSource(databaseURL string) *PostgresSource {
	return &PostgresSource{databaseURL: databaseURL}
}

func (s *PostgresSource) Name() string { return "postgres" }

// Close releases the pool if one was opened.
func (s *PostgresSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

// connect returns the open pool, creating it and running schema
// migrations on first success.
func (s *PostgresSource) connect(ctx context.Context) (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool != nil {
		return s.pool, nil
	}
	if s.databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(s.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("portfolio postgres connected", slog.String("addr", config.ConnConfig.Host))
	s.pool = pool
	return pool, nil
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute %s: %w", entry.Name(), err)
		}
		slog.Info("migration applied", slog.String("file", entry.Name()))
	}
	return nil
}

// Load reads the latest profile row and every experience ordered by id.
func (s *PostgresSource) Load(ctx context.Context) (*Document, error) {
	pool, err := s.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres source: %w", err)
	}
	doc := &Document{Experiences: []career.Experience{}}

	var linksJSON []byte
	err = pool.QueryRow(ctx,
		`SELECT name, COALESCE(headline,''), COALESCE(location,''), COALESCE(email,''), links, COALESCE(about,'')
		 FROM portfolio_profile ORDER BY id DESC LIMIT 1`,
	).Scan(&doc.Profile.Name, &doc.Profile.Headline, &doc.Profile.Location, &doc.Profile.Email, &linksJSON, &doc.Profile.About)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		slog.Warn("postgres source: no profile row")
	case err != nil:
		return nil, fmt.Errorf("postgres source: profile: %w", err)
	default:
		if err := json.Unmarshal(linksJSON, &doc.Profile.Links); err != nil {
			return nil, fmt.Errorf("postgres source: profile links: %w", err)
		}
	}

	rows, err := pool.Query(ctx,
		`SELECT id, organization_name, is_client_work, client_company_name, positions, position_name,
		        start_year, start_month, end_year, end_month, description,
		        to_char(updated_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		 FROM portfolio_experiences ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres source: experiences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e career.Experience
		var positionsJSON []byte
		if err := rows.Scan(&e.ID, &e.OrganizationName, &e.IsClientWork, &e.ClientCompanyName, &positionsJSON, &e.PositionName,
			&e.StartYear, &e.StartMonth, &e.EndYear, &e.EndMonth, &e.Description, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres source: scan experience: %w", err)
		}
		if err := json.Unmarshal(positionsJSON, &e.Positions); err != nil {
			return nil, fmt.Errorf("postgres source: experience %d positions: %w", e.ID, err)
		}
		doc.Experiences = append(doc.Experiences, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres source: experiences: %w", err)
	}
	return doc, nil
}

// Replace overwrites the stored portfolio with doc in a single transaction.
func (s *PostgresSource) Replace(ctx context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	pool, err := s.connect(ctx)
	if err != nil {
		return fmt.Errorf("postgres replace: %w", err)
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres replace: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM portfolio_experiences`); err != nil {
		return fmt.Errorf("postgres replace: clear experiences: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM portfolio_profile`); err != nil {
		return fmt.Errorf("postgres replace: clear profile: %w", err)
	}

	links := doc.Profile.Links
	if links == nil {
		links = []Link{}
	}
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("postgres replace: links: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO portfolio_profile (name, headline, location, email, links, about)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.Profile.Name, doc.Profile.Headline, doc.Profile.Location, doc.Profile.Email, linksJSON, doc.Profile.About,
	); err != nil {
		return fmt.Errorf("postgres replace: profile: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range doc.Experiences {
		positions := e.Positions
		if positions == nil {
			positions = []career.Position{}
		}
		positionsJSON, err := json.Marshal(positions)
		if err != nil {
			return fmt.Errorf("postgres replace: experience %d positions: %w", e.ID, err)
		}
		batch.Queue(
			`INSERT INTO portfolio_experiences
			 (id, organization_name, is_client_work, client_company_name, positions, position_name,
			  start_year, start_month, end_year, end_month, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			e.ID, e.OrganizationName, e.IsClientWork, e.ClientCompanyName, positionsJSON, e.PositionName,
			e.StartYear, e.StartMonth, e.EndYear, e.EndMonth, e.Description,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres replace: experiences: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres replace: commit: %w", err)
	}
	slog.Info("postgres portfolio replaced", slog.Int("experiences", len(doc.Experiences)))
	return nil
}
