package shelters

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"shelter-registry/internal/middleware"
	"shelter-registry/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo guarda el documento serializado para que cada Save sea una foto.
type fakeRepo struct {
	doc     []byte
	saves   int
	saveErr error
	loadErr error
}

func (f *fakeRepo) Load(ctx context.Context) ([]*Shelter, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.doc == nil {
		return []*Shelter{}, nil
	}
	return DecodeDocument(f.doc)
}

func (f *fakeRepo) Save(ctx context.Context, items []*Shelter) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := EncodeDocument(items)
	if err != nil {
		return err
	}
	f.doc = raw
	f.saves++
	return nil
}

func (f *fakeRepo) stored(t *testing.T) []*Shelter {
	t.Helper()
	items, err := DecodeDocument(f.doc)
	require.NoError(t, err)
	return items
}

type recorded struct {
	adopted []int
	moved   [][2]string
	failed  []string
	saves   int
	saveErr int
}

func (r *recorded) Adopted(_ string, fee int) { r.adopted = append(r.adopted, fee) }
func (r *recorded) Moved(from, to string)     { r.moved = append(r.moved, [2]string{from, to}) }
func (r *recorded) Failed(op, reason string)  { r.failed = append(r.failed, op+":"+reason) }
func (r *recorded) Saved(err error) {
	if err != nil {
		r.saveErr++
		return
	}
	r.saves++
}

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeRepo) {
	t.Helper()
	raw, err := EncodeDocument(seed())
	require.NoError(t, err)
	repo := &fakeRepo{doc: raw}

	svc := NewService(repo, opts...)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "id-1" }
	require.NoError(t, svc.Load(context.Background()))
	return svc, repo
}

func TestService_LoadEmptyRepository(t *testing.T) {
	svc := NewService(&fakeRepo{})
	require.NoError(t, svc.Load(context.Background()))
	assert.Empty(t, svc.Inventory(context.Background()))
}

func TestService_LoadMalformedIsFatal(t *testing.T) {
	svc := NewService(&fakeRepo{doc: []byte(`{"shelters":[{}]}`)})
	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestService_AdoptPersistsAndStampsReceipt(t *testing.T) {
	rec := &recorded{}
	svc, repo := newTestService(t, WithRecorder(rec))
	ctx := context.Background()

	a, err := svc.Adopt(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", a.ReceiptID)
	assert.Equal(t, fixedNow, a.AdoptedAt)
	assert.Equal(t, 250, a.Fee)

	assert.Equal(t, 1, repo.saves)
	stored := repo.stored(t)
	assert.Equal(t, float64(350), stored[0].Revenue)
	assert.Equal(t, 2, stored[0].AdoptedCount)
	assert.Equal(t, StatusAdopted, stored[0].Animals[1].Status)
	assert.Equal(t, []int{250}, rec.adopted)
	assert.Equal(t, 1, rec.saves)
}

func TestService_RejectionDoesNotSave(t *testing.T) {
	rec := &recorded{}
	svc, repo := newTestService(t, WithRecorder(rec))
	ctx := context.Background()

	_, err := svc.Move(ctx, "D1", 0)
	assert.ErrorIs(t, err, ErrAlreadyInTargetShelter)
	_, err = svc.Adopt(ctx, "ghost")
	assert.ErrorIs(t, err, ErrAnimalNotFound)

	assert.Equal(t, 0, repo.saves)
	assert.Equal(t, []string{"move:already_in_target_shelter", "adopt:animal_not_found"}, rec.failed)
}

func TestService_MovePersists(t *testing.T) {
	rec := &recorded{}
	svc, repo := newTestService(t, WithRecorder(rec))

	m, err := svc.Move(context.Background(), "B1", 0)
	require.NoError(t, err)
	assert.Equal(t, "id-1", m.RecordID)
	assert.Equal(t, fixedNow, m.MovedAt)

	stored := repo.stored(t)
	assert.Len(t, stored[0].Animals, 3)
	assert.Empty(t, stored[1].Animals)
	assert.Equal(t, [][2]string{{"South", "North"}}, rec.moved)
}

func TestService_SaveFailureSurfacesAndKeepsSession(t *testing.T) {
	rec := &recorded{}
	svc, repo := newTestService(t, WithRecorder(rec))
	boom := errors.New("disk full")
	repo.saveErr = boom

	_, err := svc.Adopt(context.Background(), "D1")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "save dataset")
	assert.Equal(t, 1, rec.saveErr)
	assert.Empty(t, rec.adopted)

	// la sesión queda mutada; el próximo save exitoso lo persiste
	inv := svc.Inventory(context.Background())
	assert.True(t, inv[0].Animals[0].IsAdopted())

	repo.saveErr = nil
	require.NoError(t, svc.Save(context.Background()))
	assert.True(t, repo.stored(t)[0].Animals[0].IsAdopted())
}

func TestService_UpdateRejectsBlankValue(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateHealth(ctx, "D1", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpdateStatus(ctx, "D1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, repo.saves)

	u, err := svc.UpdateHealth(ctx, "D1", "Vaccinated")
	require.NoError(t, err)
	assert.Equal(t, "Healthy", u.Previous)
	assert.Equal(t, "Vaccinated", repo.stored(t)[0].Animals[0].Health)
}

func TestService_UpdateStatusAdoptedWarns(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf})
	svc, repo := newTestService(t, WithLogger(log))

	ctx := middleware.WithStaff(context.Background(), middleware.Staff{ID: "staff-7"})
	_, err := svc.UpdateStatus(ctx, "D1", StatusAdopted)
	require.NoError(t, err)

	stored := repo.stored(t)
	assert.Equal(t, float64(100), stored[0].Revenue)
	assert.Equal(t, 1, stored[0].AdoptedCount)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "without adoption accounting")
	assert.Contains(t, out, `"staff_id":"staff-7"`)
}

func TestService_InventoryIsACopy(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	inv := svc.Inventory(ctx)
	inv[0].Animals[0].Name = "changed"
	inv[0].Revenue = 1e6

	again := svc.Inventory(ctx)
	assert.Equal(t, "Rex", again[0].Animals[0].Name)
	assert.Equal(t, float64(100), again[0].Revenue)
	assert.True(t, svc.Exists(ctx, "C1"))
	assert.False(t, svc.Exists(ctx, "ghost"))
}
