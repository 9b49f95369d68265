package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shelter-registry/internal/domain/shelters"
)

// DatasetRepo guarda el documento completo como una fila JSONB por dataset.
// JSONB no preserva el orden de keys, pero sí el de los arrays (que es lo que importa).
type DatasetRepo struct {
	db      *sql.DB
	dataset string
	now     func() time.Time
}

func NewDatasetRepo(db *sql.DB, dataset string) *DatasetRepo {
	dataset = strings.TrimSpace(dataset)
	if dataset == "" {
		dataset = "default"
	}
	return &DatasetRepo{db: db, dataset: dataset, now: time.Now}
}

func (r *DatasetRepo) Load(ctx context.Context) ([]*shelters.Shelter, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT document FROM shelter_datasets WHERE name = $1
	`, r.dataset).Scan(&doc)
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
		INSERT INTO shelter_datasets (name, document, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`, r.dataset, string(doc), r.now().UTC())
	if err != nil {
		return fmt.Errorf("upsert dataset %s: %w", r.dataset, err)
	}
	return nil
}
