package shelters

import "time"

// Registry es la sesión en memoria: dueña de la colección canónica de refugios.
// Las operaciones mutan in-place; persistir es responsabilidad del caller (ver Service).
// No es safe para uso concurrente.
type Registry struct {
	shelters []*Shelter
}

func NewRegistry(shelters []*Shelter) *Registry {
	if shelters == nil {
		shelters = []*Shelter{}
	}
	return &Registry{shelters: shelters}
}

// Shelters expone la colección viva (sin copiar).
func (r *Registry) Shelters() []*Shelter {
	return r.shelters
}

// FindAnimal recorre refugios y animales en orden; el primer match gana
// (los IDs no se validan como únicos).
func (r *Registry) FindAnimal(animalID string) (*Shelter, *Animal, bool) {
	for _, s := range r.shelters {
		for _, a := range s.Animals {
			if a.ID == animalID {
				return s, a, true
			}
		}
	}
	return nil, nil, false
}

// Movement describe un traslado exitoso.
type Movement struct {
	RecordID string
	MovedAt  time.Time

	AnimalID    string
	AnimalName  string
	FromShelter string
	ToShelter   string
}

// Move traslada un animal al refugio en targetIndex.
// No toca revenue ni contadores. Un animal adoptado puede moverse igual.
func (r *Registry) Move(animalID string, targetIndex int) (Movement, error) {
	from, a, ok := r.FindAnimal(animalID)
	if !ok {
		return Movement{}, ErrAnimalNotFound
	}
	if targetIndex < 0 || targetIndex >= len(r.shelters) {
		return Movement{}, ErrInvalidShelterIndex
	}

	to := r.shelters[targetIndex]
	// identidad por puntero: los nombres pueden repetirse
	if to == from {
		return Movement{}, ErrAlreadyInTargetShelter
	}

	from.removeAnimal(a)
	to.addAnimal(a)

	return Movement{
		AnimalID:    a.ID,
		AnimalName:  a.Name,
		FromShelter: from.Name,
		ToShelter:   to.Name,
	}, nil
}

// Adoption describe una adopción exitosa.
type Adoption struct {
	ReceiptID string
	AdoptedAt time.Time

	AnimalID   string
	AnimalName string
	Shelter    string
	Fee        int
}

// Adopt marca el animal como adoptado y acredita el fee al refugio donde reside.
func (r *Registry) Adopt(animalID string) (Adoption, error) {
	s, a, ok := r.FindAnimal(animalID)
	if !ok {
		return Adoption{}, ErrAnimalNotFound
	}
	if a.IsAdopted() {
		return Adoption{}, ErrAlreadyAdopted
	}

	fee := CalculateFee(*a)
	a.Status = StatusAdopted
	s.Revenue += float64(fee)
	s.AdoptedCount++

	return Adoption{
		AnimalID:   a.ID,
		AnimalName: a.Name,
		Shelter:    s.Name,
		Fee:        fee,
	}, nil
}

type Field string

const (
	FieldHealth Field = "health"
	FieldStatus Field = "status"
)

// Update describe la sobreescritura de un campo de texto libre.
type Update struct {
	AnimalID   string
	AnimalName string
	Field      Field
	Previous   string
	Value      string
}

func (u Update) Message() string {
	switch u.Field {
	case FieldHealth:
		return "Health updated."
	case FieldStatus:
		return "Status updated."
	default:
		return "Updated."
	}
}

func (r *Registry) UpdateHealth(animalID, health string) (Update, error) {
	_, a, ok := r.FindAnimal(animalID)
	if !ok {
		return Update{}, ErrAnimalNotFound
	}
	u := Update{AnimalID: a.ID, AnimalName: a.Name, Field: FieldHealth, Previous: a.Health, Value: health}
	a.Health = health
	return u, nil
}

// UpdateStatus sobreescribe el status tal cual. Setear "Adopted" por acá NO cobra fee
// ni incrementa adopted_count; ese camino es exclusivo de Adopt.
func (r *Registry) UpdateStatus(animalID, status string) (Update, error) {
	_, a, ok := r.FindAnimal(animalID)
	if !ok {
		return Update{}, ErrAnimalNotFound
	}
	u := Update{AnimalID: a.ID, AnimalName: a.Name, Field: FieldStatus, Previous: a.Status, Value: status}
	a.Status = status
	return u, nil
}

// Animals lista todos los animales con su refugio. onlyAdoptable filtra los ya adoptados.
func (r *Registry) Animals(onlyAdoptable bool) []LocatedAnimal {
	out := make([]LocatedAnimal, 0)
	for i, s := range r.shelters {
		for _, a := range s.Animals {
			if onlyAdoptable && a.IsAdopted() {
				continue
			}
			out = append(out, LocatedAnimal{Animal: *a, ShelterIndex: i, ShelterName: s.Name})
		}
	}
	return out
}

func (r *Registry) Revenue() RevenueReport {
	rep := RevenueReport{Shelters: make([]ShelterRevenue, 0, len(r.shelters))}
	for _, s := range r.shelters {
		rep.Shelters = append(rep.Shelters, ShelterRevenue{
			Name:         s.Name,
			AdoptedCount: s.AdoptedCount,
			Revenue:      s.Revenue,
		})
		rep.TotalRevenue += s.Revenue
		rep.TotalAdopted += s.AdoptedCount
	}
	return rep
}
