package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shelter-registry/internal/domain/shelters"

	_ "modernc.org/sqlite" // driver sqlite en Go puro
)

// DatasetRepo guarda el snapshot completo del documento en una tabla SQLite
// (una fila por dataset).
type DatasetRepo struct {
	db      *sql.DB
	dataset string
	now     func() time.Time
}

// Open abre (o crea) la base y asegura el schema.
func Open(ctx context.Context, path, dataset string) (*DatasetRepo, error) {
	if strings.TrimSpace(path) == "" {
		path = "shelters.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite no tolera escritores concurrentes; con ":memory:" además cada conexión es otra base
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS shelter_datasets (
		name       TEXT PRIMARY KEY,
		document   BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create shelter_datasets: %w", err)
	}

	dataset = strings.TrimSpace(dataset)
	if dataset == "" {
		dataset = "default"
	}
	return &DatasetRepo{db: db, dataset: dataset, now: time.Now}, nil
}

func (r *DatasetRepo) Close() error {
	return r.db.Close()
}

func (r *DatasetRepo) Load(ctx context.Context) ([]*shelters.Shelter, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM shelter_datasets WHERE name = ?`, r.dataset).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*shelters.Shelter{}, nil
		}
		return nil, fmt.Errorf("select dataset %s: %w", r.dataset, err)
	}
	return shelters.DecodeDocument(doc)
}

func (r *DatasetRepo) Save(ctx context.Context, items []*shelters.Shelter) error {
	doc, err := shelters.EncodeDocument(items)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO shelter_datasets (name, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
	`, r.dataset, doc, r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert dataset %s: %w", r.dataset, err)
	}
	return nil
}
