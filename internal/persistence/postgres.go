package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/academic-records-api/pkg/config"
)

// Postgres mirrors store mutations into a relational backend. Records are
// written as JSONB payloads keyed by the domain key; the participant
// payload carries the embedded enrollment and grade-history lists, so the
// relational shape matches the ownership model exactly.
type Postgres struct {
	db *sqlx.DB
}

var tableFor = map[Kind]string{
	KindParticipants: "participants",
	KindCourses:      "courses",
	KindPrograms:     "programs",
}

// Connect opens the database and returns a Postgres adapter.
func Connect(cfg config.DatabaseConfig) (*Postgres, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)
	return &Postgres{db: db}, nil
}

// NewPostgres wraps an existing connection, used by tests with sqlmock.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the mirror tables when absent.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, table := range tableFor {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, table)
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}

func (p *Postgres) upsert(ctx context.Context, kind Kind, key string, record interface{}) error {
	table, ok := tableFor[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", kind, key, err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (key, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`, table)
	if _, err := p.db.ExecContext(ctx, query, key, payload); err != nil {
		return fmt.Errorf("upsert %s %s: %w", kind, key, err)
	}
	return nil
}

// Create inserts or replaces the record payload.
func (p *Postgres) Create(ctx context.Context, kind Kind, key string, record interface{}) error {
	return p.upsert(ctx, kind, key, record)
}

// Update replaces the record payload.
func (p *Postgres) Update(ctx context.Context, kind Kind, key string, record interface{}) error {
	return p.upsert(ctx, kind, key, record)
}

// Delete removes the mirrored record.
func (p *Postgres) Delete(ctx context.Context, kind Kind, key string) error {
	table, ok := tableFor[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE key = $1", table)
	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
