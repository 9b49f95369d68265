package shelters

// StatusAdopted es el único status con significado propio.
// Cualquier otro valor se trata como "no adoptado".
const StatusAdopted = "Adopted"

// Animal es un registro individual dentro de un refugio.
type Animal struct {
	ID   string
	Type string // Dog, Cat u otro (define el tier de fee)

	Name  string
	Breed string
	Age   int

	Health string // texto libre
	Status string
}

// IsAdopted indica si el animal ya fue adoptado.
func (a Animal) IsAdopted() bool {
	return a.Status == StatusAdopted
}

// Shelter representa un refugio con sus animales y contadores.
type Shelter struct {
	Name     string // identidad de display, no necesariamente única
	Location string
	Address  string

	Animals []*Animal

	Revenue      float64
	AdoptedCount int
}

func (s *Shelter) addAnimal(a *Animal) {
	s.Animals = append(s.Animals, a)
}

// removeAnimal saca el animal por identidad (no por ID).
func (s *Shelter) removeAnimal(a *Animal) bool {
	for i, cur := range s.Animals {
		if cur == a {
			s.Animals = append(s.Animals[:i], s.Animals[i+1:]...)
			return true
		}
	}
	return false
}

// Clone devuelve una copia profunda del refugio.
func (s *Shelter) Clone() *Shelter {
	out := &Shelter{
		Name:         s.Name,
		Location:     s.Location,
		Address:      s.Address,
		Revenue:      s.Revenue,
		AdoptedCount: s.AdoptedCount,
		Animals:      make([]*Animal, 0, len(s.Animals)),
	}
	for _, a := range s.Animals {
		cp := *a
		out.Animals = append(out.Animals, &cp)
	}
	return out
}

// CloneAll copia profunda de una colección completa.
func CloneAll(in []*Shelter) []*Shelter {
	out := make([]*Shelter, 0, len(in))
	for _, s := range in {
		out = append(out, s.Clone())
	}
	return out
}

// LocatedAnimal es un animal junto con el refugio donde reside.
type LocatedAnimal struct {
	Animal       Animal
	ShelterIndex int
	ShelterName  string
}

// ShelterRevenue es una fila del reporte de revenue.
type ShelterRevenue struct {
	Name         string
	AdoptedCount int
	Revenue      float64
}

type RevenueReport struct {
	Shelters     []ShelterRevenue
	TotalRevenue float64
	TotalAdopted int
}
