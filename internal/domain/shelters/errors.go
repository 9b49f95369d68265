package shelters

import "errors"

var (
	ErrAnimalNotFound         = errors.New("animal not found")
	ErrInvalidShelterIndex    = errors.New("invalid shelter index")
	ErrAlreadyInTargetShelter = errors.New("animal is already in this shelter")
	ErrAlreadyAdopted         = errors.New("animal already adopted")
	ErrInvalidInput           = errors.New("invalid input")

	// ErrMalformedDocument es el único error fatal: el documento no respeta el schema.
	ErrMalformedDocument = errors.New("malformed shelters document")
)

// Reason traduce un error de dominio a un label estable (metrics/logs).
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAnimalNotFound):
		return "animal_not_found"
	case errors.Is(err, ErrInvalidShelterIndex):
		return "invalid_shelter_index"
	case errors.Is(err, ErrAlreadyInTargetShelter):
		return "already_in_target_shelter"
	case errors.Is(err, ErrAlreadyAdopted):
		return "already_adopted"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrMalformedDocument):
		return "malformed_document"
	default:
		return "internal"
	}
}
