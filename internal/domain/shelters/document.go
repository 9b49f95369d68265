package shelters

import (
	"encoding/json"
	"fmt"
)

// Formato del documento de respaldo:
//
//	{ "shelters": [ { "name", "location", "address", "revenue", "adopted_count",
//	                  "animals": [ { "id", "type", "name", "age", "breed", "health", "status" } ] } ] }
//
// Todos los campos son obligatorios al leer. Al escribir se respeta el orden de arriba.

type documentIn struct {
	Shelters *[]shelterIn `json:"shelters"`
}

type shelterIn struct {
	Name         *string     `json:"name"`
	Location     *string     `json:"location"`
	Address      *string     `json:"address"`
	Revenue      *float64    `json:"revenue"`
	AdoptedCount *int        `json:"adopted_count"`
	Animals      *[]animalIn `json:"animals"`
}

type animalIn struct {
	ID     *string `json:"id"`
	Type   *string `json:"type"`
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Breed  *string `json:"breed"`
	Health *string `json:"health"`
	Status *string `json:"status"`
}

type documentOut struct {
	Shelters []shelterOut `json:"shelters"`
}

type shelterOut struct {
	Name         string      `json:"name"`
	Location     string      `json:"location"`
	Address      string      `json:"address"`
	Revenue      float64     `json:"revenue"`
	AdoptedCount int         `json:"adopted_count"`
	Animals      []animalOut `json:"animals"`
}

type animalOut struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Breed  string `json:"breed"`
	Health string `json:"health"`
	Status string `json:"status"`
}

// DecodeDocument parsea el documento completo. Cualquier campo ausente o con tipo
// inválido devuelve un error que envuelve ErrMalformedDocument.
func DecodeDocument(raw []byte) ([]*Shelter, error) {
	var doc documentIn
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Shelters == nil {
		return nil, missing("shelters")
	}

	out := make([]*Shelter, 0, len(*doc.Shelters))
	for i, s := range *doc.Shelters {
		path := fmt.Sprintf("shelters[%d]", i)
		switch {
		case s.Name == nil:
			return nil, missing(path + ".name")
		case s.Location == nil:
			return nil, missing(path + ".location")
		case s.Address == nil:
			return nil, missing(path + ".address")
		case s.Revenue == nil:
			return nil, missing(path + ".revenue")
		case s.AdoptedCount == nil:
			return nil, missing(path + ".adopted_count")
		case s.Animals == nil:
			return nil, missing(path + ".animals")
		}

		sh := &Shelter{
			Name:         *s.Name,
			Location:     *s.Location,
			Address:      *s.Address,
			Revenue:      *s.Revenue,
			AdoptedCount: *s.AdoptedCount,
			Animals:      make([]*Animal, 0, len(*s.Animals)),
		}

		for j, in := range *s.Animals {
			a, err := decodeAnimal(fmt.Sprintf("%s.animals[%d]", path, j), in)
			if err != nil {
				return nil, err
			}
			sh.addAnimal(a)
		}
		out = append(out, sh)
	}
	return out, nil
}

func decodeAnimal(path string, a animalIn) (*Animal, error) {
	switch {
	case a.ID == nil:
		return nil, missing(path + ".id")
	case a.Type == nil:
		return nil, missing(path + ".type")
	case a.Name == nil:
		return nil, missing(path + ".name")
	case a.Age == nil:
		return nil, missing(path + ".age")
	case a.Breed == nil:
		return nil, missing(path + ".breed")
	case a.Health == nil:
		return nil, missing(path + ".health")
	case a.Status == nil:
		return nil, missing(path + ".status")
	}
	return &Animal{
		ID:     *a.ID,
		Type:   *a.Type,
		Name:   *a.Name,
		Age:    *a.Age,
		Breed:  *a.Breed,
		Health: *a.Health,
		Status: *a.Status,
	}, nil
}

// EncodeDocument serializa el estado completo (indent de 4 espacios).
func EncodeDocument(shelters []*Shelter) ([]byte, error) {
	doc := documentOut{Shelters: make([]shelterOut, 0, len(shelters))}
	for _, s := range shelters {
		so := shelterOut{
			Name:         s.Name,
			Location:     s.Location,
			Address:      s.Address,
			Revenue:      s.Revenue,
			AdoptedCount: s.AdoptedCount,
			Animals:      make([]animalOut, 0, len(s.Animals)),
		}
		for _, a := range s.Animals {
			so.Animals = append(so.Animals, animalOut{
				ID:     a.ID,
				Type:   a.Type,
				Name:   a.Name,
				Age:    a.Age,
				Breed:  a.Breed,
				Health: a.Health,
				Status: a.Status,
			})
		}
		doc.Shelters = append(doc.Shelters, so)
	}
	return json.MarshalIndent(doc, "", "    ")
}

func missing(path string) error {
	return fmt.Errorf("%w: missing field %s", ErrMalformedDocument, path)
}
