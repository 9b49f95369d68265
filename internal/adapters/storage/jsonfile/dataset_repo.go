package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"shelter-registry/internal/domain/shelters"
)

// DatasetRepo lee y escribe el documento completo en un archivo JSON.
type DatasetRepo struct {
	path string
}

func NewDatasetRepo(path string) *DatasetRepo {
	return &DatasetRepo{path: path}
}

func (r *DatasetRepo) Path() string {
	return r.path
}

// Load: si el archivo no existe devuelve colección vacía.
func (r *DatasetRepo) Load(ctx context.Context) ([]*shelters.Shelter, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*shelters.Shelter{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return shelters.DecodeDocument(raw)
}

// Save escribe a un temp en el mismo directorio y hace rename, así un lector
// nunca ve el documento a medio escribir.
func (r *DatasetRepo) Save(ctx context.Context, items []*shelters.Shelter) error {
	b, err := shelters.EncodeDocument(items)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op después del rename

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	// conserva el modo que ya tenía el documento
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
