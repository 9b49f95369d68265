package memory

import (
	"context"
	"sync"

	"shelter-registry/internal/domain/shelters"
)

// DatasetRepo guarda el documento serializado en memoria (modo dev / tests).
// Pasa por el mismo codec que los demás adapters, así Load nunca comparte
// punteros con lo que se guardó.
type DatasetRepo struct {
	mu  sync.RWMutex
	doc []byte // nil = documento inexistente
}

func NewDatasetRepo() *DatasetRepo {
	return &DatasetRepo{}
}

// NewDatasetRepoFromDocument arranca con un documento ya existente (seed).
func NewDatasetRepoFromDocument(doc []byte) *DatasetRepo {
	cp := make([]byte, len(doc))
	copy(cp, doc)
	return &DatasetRepo{doc: cp}
}

func (r *DatasetRepo) Load(ctx context.Context) ([]*shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.doc == nil {
		return []*shelters.Shelter{}, nil
	}
	return shelters.DecodeDocument(r.doc)
}

func (r *DatasetRepo) Save(ctx context.Context, items []*shelters.Shelter) error {
	b, err := shelters.EncodeDocument(items)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = b
	return nil
}

// Document devuelve una copia del último documento guardado.
func (r *DatasetRepo) Document() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.doc == nil {
		return nil
	}
	cp := make([]byte, len(r.doc))
	copy(cp, r.doc)
	return cp
}
