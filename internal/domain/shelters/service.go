package shelters

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"shelter-registry/internal/middleware"
	"shelter-registry/internal/platform/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "shelter-registry/internal/domain/shelters"

// Recorder recibe los eventos de negocio que interesan a metrics.
type Recorder interface {
	Adopted(shelter string, fee int)
	Moved(from, to string)
	Failed(op, reason string)
	Saved(err error)
}

type nopRecorder struct{}

func (nopRecorder) Adopted(string, int)   {}
func (nopRecorder) Moved(string, string)  {}
func (nopRecorder) Failed(string, string) {}
func (nopRecorder) Saved(error)           {}

// Service es la capa de aplicación compartida por la API web y el menú:
// carga el dataset una vez, ejecuta la mutación sobre el Registry y, si
// salió bien, persiste el documento completo.
type Service struct {
	mu  sync.Mutex
	reg *Registry

	repo     Repository
	log      logger.Logger
	recorder Recorder
	tracer   trace.Tracer

	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		reg:      NewRegistry(nil),
		repo:     repo,
		log:      logger.Nop(),
		recorder: nopRecorder{},
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reemplaza la sesión con el contenido del repositorio.
func (s *Service) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "shelters.Load")
	defer span.End()

	items, err := s.repo.Load(ctx)
	if err != nil {
		fail(span, err)
		return fmt.Errorf("load dataset: %w", err)
	}

	s.mu.Lock()
	s.reg = NewRegistry(items)
	s.mu.Unlock()

	s.log.Info("dataset loaded", map[string]any{"shelters": len(items)})
	return nil
}

// Save persiste el estado actual (el menú lo usa al salir).
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Service) Inventory(ctx context.Context) []*Shelter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CloneAll(s.reg.Shelters())
}

func (s *Service) Animals(ctx context.Context, onlyAdoptable bool) []LocatedAnimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Animals(onlyAdoptable)
}

func (s *Service) Revenue(ctx context.Context) RevenueReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Revenue()
}

// Exists permite a los adapters validar el ID antes de pedir más input (flujo del menú).
func (s *Service) Exists(ctx context.Context, animalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _, ok := s.reg.FindAnimal(animalID)
	return ok
}

func (s *Service) Move(ctx context.Context, animalID string, targetIndex int) (Movement, error) {
	ctx, span := s.tracer.Start(ctx, "shelters.Move", trace.WithAttributes(
		attribute.String("animal.id", animalID),
		attribute.Int("shelter.target_index", targetIndex),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.reg.Move(animalID, targetIndex)
	if err != nil {
		return Movement{}, s.rejected(ctx, span, "move", err, map[string]any{"animal_id": animalID, "target_index": targetIndex})
	}
	if err := s.saveLocked(ctx); err != nil {
		fail(span, err)
		return Movement{}, err
	}

	m.RecordID = s.newID()
	m.MovedAt = s.now()
	s.recorder.Moved(m.FromShelter, m.ToShelter)
	s.opLog(ctx).Info("animal moved", map[string]any{
		"record_id": m.RecordID,
		"animal_id": m.AnimalID,
		"from":      m.FromShelter,
		"to":        m.ToShelter,
	})
	return m, nil
}

func (s *Service) Adopt(ctx context.Context, animalID string) (Adoption, error) {
	ctx, span := s.tracer.Start(ctx, "shelters.Adopt", trace.WithAttributes(
		attribute.String("animal.id", animalID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.reg.Adopt(animalID)
	if err != nil {
		return Adoption{}, s.rejected(ctx, span, "adopt", err, map[string]any{"animal_id": animalID})
	}
	if err := s.saveLocked(ctx); err != nil {
		fail(span, err)
		return Adoption{}, err
	}

	a.ReceiptID = s.newID()
	a.AdoptedAt = s.now()
	span.SetAttributes(attribute.Int("adoption.fee", a.Fee))
	s.recorder.Adopted(a.Shelter, a.Fee)
	s.opLog(ctx).Info("animal adopted", map[string]any{
		"receipt_id": a.ReceiptID,
		"animal_id":  a.AnimalID,
		"shelter":    a.Shelter,
		"fee":        a.Fee,
	})
	return a, nil
}

func (s *Service) UpdateHealth(ctx context.Context, animalID, health string) (Update, error) {
	return s.update(ctx, FieldHealth, animalID, health)
}

func (s *Service) UpdateStatus(ctx context.Context, animalID, status string) (Update, error) {
	return s.update(ctx, FieldStatus, animalID, status)
}

func (s *Service) update(ctx context.Context, field Field, animalID, value string) (Update, error) {
	op := "update_" + string(field)
	ctx, span := s.tracer.Start(ctx, "shelters.Update", trace.WithAttributes(
		attribute.String("animal.id", animalID),
		attribute.String("field", string(field)),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]any{"animal_id": animalID, "field": string(field)}

	// Boundary compartido por web y menú: el Registry acepta cualquier string.
	if strings.TrimSpace(value) == "" {
		return Update{}, s.rejected(ctx, span, op, ErrInvalidInput, fields)
	}

	var (
		u   Update
		err error
	)
	switch field {
	case FieldHealth:
		u, err = s.reg.UpdateHealth(animalID, value)
	default:
		u, err = s.reg.UpdateStatus(animalID, value)
	}
	if err != nil {
		return Update{}, s.rejected(ctx, span, op, err, fields)
	}
	if err := s.saveLocked(ctx); err != nil {
		fail(span, err)
		return Update{}, err
	}

	fields["previous"] = u.Previous
	fields["value"] = u.Value
	if field == FieldStatus && value == StatusAdopted && u.Previous != StatusAdopted {
		// Camino manual a "Adopted": no cobra fee ni cuenta la adopción.
		s.opLog(ctx).Warn("status set to Adopted without adoption accounting", fields)
		return u, nil
	}
	s.opLog(ctx).Info("animal updated", fields)
	return u, nil
}

func (s *Service) saveLocked(ctx context.Context) error {
	err := s.repo.Save(ctx, s.reg.Shelters())
	s.recorder.Saved(err)
	if err != nil {
		s.log.Error("dataset save failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

func (s *Service) rejected(ctx context.Context, span trace.Span, op string, err error, fields map[string]any) error {
	reason := Reason(err)
	span.SetAttributes(attribute.String("rejected.reason", reason))
	s.recorder.Failed(op, reason)

	fields["op"] = op
	fields["reason"] = reason
	s.opLog(ctx).Debug("operation rejected", fields)
	return err
}

func (s *Service) opLog(ctx context.Context) logger.Logger {
	if staff, ok := middleware.GetStaff(ctx); ok {
		return s.log.With(map[string]any{"staff_id": staff.ID})
	}
	return s.log
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
