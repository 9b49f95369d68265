package shelters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/shelters", listSheltersHandler(svc))
	r.Get("/revenue", revenueHandler(svc))

	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))

		ar.Post("/{animalID}/move", moveAnimalHandler(svc))
		ar.Post("/{animalID}/adopt", adoptAnimalHandler(svc))

		// Sobreescritura de texto libre
		ar.Patch("/{animalID}/health", updateHealthHandler(svc))
		ar.Patch("/{animalID}/status", updateStatusHandler(svc))
	})
}

type animalResponse struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Breed  string `json:"breed"`
	Health string `json:"health"`
	Status string `json:"status"`
}

type shelterResponse struct {
	Index        int              `json:"index"`
	Name         string           `json:"name"`
	Location     string           `json:"location"`
	Address      string           `json:"address"`
	Revenue      float64          `json:"revenue"`
	AdoptedCount int              `json:"adopted_count"`
	Animals      []animalResponse `json:"animals"`
}

type locatedAnimalResponse struct {
	animalResponse
	ShelterIndex int    `json:"shelter_index"`
	ShelterName  string `json:"shelter_name"`
}

type shelterRevenueResponse struct {
	Name         string  `json:"name"`
	AdoptedCount int     `json:"adopted_count"`
	Revenue      float64 `json:"revenue"`
}

type revenueResponse struct {
	Shelters     []shelterRevenueResponse `json:"shelters"`
	TotalRevenue float64                  `json:"total_revenue"`
	TotalAdopted int                      `json:"total_adopted"`
}

type moveRequest struct {
	// Índice 0-based, el mismo `index` que devuelve GET /shelters.
	TargetShelter *int `json:"target_shelter"`
}

type movementResponse struct {
	RecordID    string    `json:"record_id"`
	MovedAt     time.Time `json:"moved_at"`
	AnimalID    string    `json:"animal_id"`
	AnimalName  string    `json:"animal_name"`
	FromShelter string    `json:"from_shelter"`
	ToShelter   string    `json:"to_shelter"`
}

type adoptionResponse struct {
	ReceiptID  string    `json:"receipt_id"`
	AdoptedAt  time.Time `json:"adopted_at"`
	AnimalID   string    `json:"animal_id"`
	AnimalName string    `json:"animal_name"`
	Shelter    string    `json:"shelter"`
	Fee        int       `json:"fee"`
}

type updateRequest struct {
	Value string `json:"value"`
}

type updateResponse struct {
	AnimalID   string `json:"animal_id"`
	AnimalName string `json:"animal_name"`
	Field      Field  `json:"field"`
	Previous   string `json:"previous"`
	Value      string `json:"value"`
	Message    string `json:"message"`
}

// listSheltersHandler godoc
// @Summary Inventario de refugios
// @Description Devuelve todos los refugios en orden, cada uno con su `index` (el que usa move) y sus animales.
// @Tags shelters
// @Produce json
// @Success 200 {array} shelterResponse
// @Router /shelters [get]
func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Inventory(r.Context())

		out := make([]shelterResponse, 0, len(items))
		for i, s := range items {
			out = append(out, toShelterResponse(i, s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// revenueHandler godoc
// @Summary Reporte de revenue
// @Description Revenue y adopciones por refugio, con totales.
// @Tags shelters
// @Produce json
// @Success 200 {object} revenueResponse
// @Router /revenue [get]
func revenueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep := svc.Revenue(r.Context())

		out := revenueResponse{
			Shelters:     make([]shelterRevenueResponse, 0, len(rep.Shelters)),
			TotalRevenue: rep.TotalRevenue,
			TotalAdopted: rep.TotalAdopted,
		}
		for _, s := range rep.Shelters {
			out.Shelters = append(out.Shelters, shelterRevenueResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Lista plana de animales con el refugio donde residen. Con `adoptable=true` excluye los ya adoptados.
// @Tags animals
// @Produce json
// @Param adoptable query bool false "Solo animales no adoptados"
// @Success 200 {array} locatedAnimalResponse
// @Failure 400 {string} string "invalid adoptable"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyAdoptable := false
		if v := r.URL.Query().Get("adoptable"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "invalid adoptable", http.StatusBadRequest)
				return
			}
			onlyAdoptable = b
		}

		items := svc.Animals(r.Context(), onlyAdoptable)
		out := make([]locatedAnimalResponse, 0, len(items))
		for _, la := range items {
			out = append(out, locatedAnimalResponse{
				animalResponse: toAnimalResponse(la.Animal),
				ShelterIndex:   la.ShelterIndex,
				ShelterName:    la.ShelterName,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// moveAnimalHandler godoc
// @Summary Trasladar animal
// @Description Mueve el animal al refugio indicado por índice. No afecta revenue ni contadores.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Staff-ID header string false "Operador del refugio (auditoría)"
// @Param animalID path string true "ID del animal"
// @Param payload body moveRequest true "Refugio destino"
// @Success 200 {object} movementResponse
// @Failure 400 {string} string "invalid json / invalid shelter selection / invalid shelter index"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "animal is already in this shelter"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/move [post]
func moveAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				http.Error(w, "invalid shelter selection", http.StatusBadRequest)
				return
			}
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.TargetShelter == nil {
			http.Error(w, "invalid shelter selection", http.StatusBadRequest)
			return
		}

		m, err := svc.Move(r.Context(), chi.URLParam(r, "animalID"), *req.TargetShelter)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, movementResponse{
			RecordID:    m.RecordID,
			MovedAt:     m.MovedAt,
			AnimalID:    m.AnimalID,
			AnimalName:  m.AnimalName,
			FromShelter: m.FromShelter,
			ToShelter:   m.ToShelter,
		})
	}
}

// adoptAnimalHandler godoc
// @Summary Adoptar animal
// @Description Marca el animal como adoptado, calcula el fee y lo acredita al refugio donde reside.
// @Tags animals
// @Produce json
// @Param X-Staff-ID header string false "Operador del refugio (auditoría)"
// @Param animalID path string true "ID del animal"
// @Success 200 {object} adoptionResponse
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "animal already adopted"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/adopt [post]
func adoptAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Adopt(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, adoptionResponse{
			ReceiptID:  a.ReceiptID,
			AdoptedAt:  a.AdoptedAt,
			AnimalID:   a.AnimalID,
			AnimalName: a.AnimalName,
			Shelter:    a.Shelter,
			Fee:        a.Fee,
		})
	}
}

// updateHealthHandler godoc
// @Summary Actualizar health
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Staff-ID header string false "Operador del refugio (auditoría)"
// @Param animalID path string true "ID del animal"
// @Param payload body updateRequest true "Nuevo valor (texto libre, no vacío)"
// @Success 200 {object} updateResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/health [patch]
func updateHealthHandler(svc *Service) http.HandlerFunc {
	return updateHandler(svc.UpdateHealth)
}

// updateStatusHandler godoc
// @Summary Actualizar status
// @Description Sobreescribe el status tal cual. Setear "Adopted" por acá no cobra fee ni cuenta la adopción; para eso usar /adopt.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Staff-ID header string false "Operador del refugio (auditoría)"
// @Param animalID path string true "ID del animal"
// @Param payload body updateRequest true "Nuevo valor (texto libre, no vacío)"
// @Success 200 {object} updateResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return updateHandler(svc.UpdateStatus)
}

func updateHandler(apply func(ctx context.Context, animalID, value string) (Update, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := apply(r.Context(), chi.URLParam(r, "animalID"), req.Value)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, updateResponse{
			AnimalID:   u.AnimalID,
			AnimalName: u.AnimalName,
			Field:      u.Field,
			Previous:   u.Previous,
			Value:      u.Value,
			Message:    u.Message(),
		})
	}
}

// writeError traduce errores de dominio a status HTTP. Lo demás es 500 sin detalle.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAnimalNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidShelterIndex), errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAlreadyInTargetShelter), errors.Is(err, ErrAlreadyAdopted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:     a.ID,
		Type:   a.Type,
		Name:   a.Name,
		Age:    a.Age,
		Breed:  a.Breed,
		Health: a.Health,
		Status: a.Status,
	}
}

func toShelterResponse(index int, s *Shelter) shelterResponse {
	out := shelterResponse{
		Index:        index,
		Name:         s.Name,
		Location:     s.Location,
		Address:      s.Address,
		Revenue:      s.Revenue,
		AdoptedCount: s.AdoptedCount,
		Animals:      make([]animalResponse, 0, len(s.Animals)),
	}
	for _, a := range s.Animals {
		out.Animals = append(out.Animals, toAnimalResponse(*a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
