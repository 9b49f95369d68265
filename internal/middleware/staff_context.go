package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const staffKey ctxKey = "staff"

// StaffHeader identifica al operador del refugio que hace el request.
const StaffHeader = "X-Staff-ID"

// Staff es quien ejecuta una operación (solo se usa para auditoría en logs).
type Staff struct {
	ID string
}

// StaffContext:
// - Si viene X-Staff-ID => setea Staff en el context.
// - Si no viene, el request sigue igual; nada exige identidad.
func StaffContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(StaffHeader))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithStaff(r.Context(), Staff{ID: id})))
	})
}

// WithStaff permite a otros adapters (CLI) setear el operador.
func WithStaff(ctx context.Context, s Staff) context.Context {
	return context.WithValue(ctx, staffKey, s)
}

func GetStaff(ctx context.Context) (Staff, bool) {
	v := ctx.Value(staffKey)
	if v == nil {
		return Staff{}, false
	}
	s, ok := v.(Staff)
	if !ok || s.ID == "" {
		return Staff{}, false
	}
	return s, true
}
