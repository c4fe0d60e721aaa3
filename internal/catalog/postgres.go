package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"quickfind/internal/domain"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS catalog_items (
		id INT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`
	countSQL  = `SELECT COUNT(*) FROM catalog_items`
	insertSQL = `INSERT INTO catalog_items (id, title, description) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`
	selectSQL = `SELECT id, title, description FROM catalog_items ORDER BY id`
)

// PostgresStore reads the catalog from a catalog_items table
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to dsn, creates the table if needed and seeds it
// with the sample catalog when it is empty
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("missing database url")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create catalog table: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, countSQL).Scan(&n); err != nil {
		return fmt.Errorf("failed to count catalog items: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range sampleItems {
		if _, err := tx.ExecContext(ctx, insertSQL, it.ID, it.Title, it.Description); err != nil {
			return fmt.Errorf("failed to seed item %d: %w", it.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// Items returns all rows ordered by id
func (s *PostgresStore) Items(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return items, nil
}

// Mode names the backing storage
func (s *PostgresStore) Mode() string { return "postgres" }

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
