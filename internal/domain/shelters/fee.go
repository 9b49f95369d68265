package shelters

const (
	TypeDog = "Dog"
	TypeCat = "Cat"

	// seniorAge: desde esta edad aplica el fee reducido.
	seniorAge = 5
)

// CalculateFee devuelve el fee de adopción según tipo y edad.
// Cualquier tipo distinto de Dog/Cat cae en el tier "other". Nunca falla.
func CalculateFee(a Animal) int {
	young := a.Age < seniorAge

	switch a.Type {
	case TypeDog:
		if young {
			return 300
		}
		return 200
	case TypeCat:
		if young {
			return 250
		}
		return 150
	default:
		if young {
			return 150
		}
		return 100
	}
}
