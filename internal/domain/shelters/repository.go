package shelters

import "context"

// Repository carga y guarda el dataset completo (documento entero, sin parches).
// Load sobre un documento inexistente devuelve una colección vacía, no error.
type Repository interface {
	Load(ctx context.Context) ([]*Shelter, error)
	Save(ctx context.Context, shelters []*Shelter) error
}
