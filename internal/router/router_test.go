package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shelter-registry/internal/adapters/storage/memory"
	"shelter-registry/internal/domain/shelters"
	"shelter-registry/internal/platform/metrics"
	"shelter-registry/internal/router"
)

const fixture = `{
  "shelters": [
    {"name": "North", "location": "Uptown", "address": "1 Elm St", "revenue": 0, "adopted_count": 0,
     "animals": [
       {"id": "D1", "type": "Dog", "name": "Rex", "age": 2, "breed": "Lab", "health": "Healthy", "status": "Available"},
       {"id": "C1", "type": "Cat", "name": "Luna", "age": 3, "breed": "Persian", "health": "Healthy", "status": "Available"}
     ]},
    {"name": "South", "location": "Downtown", "address": "2 Oak St", "revenue": 0, "adopted_count": 0, "animals": []}
  ]
}`

func newServer(t *testing.T) (*httptest.Server, *memory.DatasetRepo) {
	t.Helper()

	repo := memory.NewDatasetRepoFromDocument([]byte(fixture))
	m := metrics.New()
	svc := shelters.NewService(repo, shelters.WithRecorder(m))
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{Service: svc, Metrics: m}))
	t.Cleanup(ts.Close)
	return ts, repo
}

func TestHTTP_EndToEnd_AdoptAndMove(t *testing.T) {
	ts, repo := newServer(t)
	staffID := "staff-1"

	// 1) Health
	{
		st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
		}
	}

	// 2) Adoptar Cat de 3 años => fee 250
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/C1/adopt", staffID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 adopt, got %d body=%s", st, string(body))
		}
		var resp struct {
			ReceiptID string `json:"receipt_id"`
			Fee       int    `json:"fee"`
			Shelter   string `json:"shelter"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Fee != 250 || resp.Shelter != "North" || resp.ReceiptID == "" {
			t.Fatalf("unexpected adoption: %s", string(body))
		}
	}

	// 3) Segunda adopción => 409
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/C1/adopt", staffID, nil)
		if st != http.StatusConflict || !strings.Contains(string(body), "animal already adopted") {
			t.Fatalf("expected 409 already adopted, got %d body=%s", st, string(body))
		}
	}

	// 4) Revenue refleja la adopción
	{
		st, body := doReq(t, ts.URL, "GET", "/revenue", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 revenue, got %d", st)
		}
		var resp struct {
			TotalRevenue float64 `json:"total_revenue"`
			TotalAdopted int     `json:"total_adopted"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.TotalRevenue != 250 || resp.TotalAdopted != 1 {
			t.Fatalf("unexpected revenue: %s", string(body))
		}
	}

	// 5) Trasladar D1 a South
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/D1/move", staffID, map[string]any{"target_shelter": 1})
		if st != http.StatusOK {
			t.Fatalf("expected 200 move, got %d body=%s", st, string(body))
		}
	}

	// 6) Mismo refugio => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/D1/move", staffID, map[string]any{"target_shelter": 1})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 same shelter, got %d", st)
		}
	}

	// 7) Adoptables: solo D1 queda
	{
		st, body := doReq(t, ts.URL, "GET", "/animals?adoptable=true", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 animals, got %d", st)
		}
		var resp []struct {
			ID           string `json:"id"`
			ShelterIndex int    `json:"shelter_index"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp) != 1 || resp[0].ID != "D1" || resp[0].ShelterIndex != 1 {
			t.Fatalf("unexpected adoptable list: %s", string(body))
		}
	}

	// 8) Todo quedó persistido
	saved, err := shelters.DecodeDocument(repo.Document())
	if err != nil {
		t.Fatalf("decode saved document: %v", err)
	}
	if len(saved[0].Animals) != 1 || len(saved[1].Animals) != 1 || saved[0].AdoptedCount != 1 {
		t.Fatalf("unexpected saved state: %s", string(repo.Document()))
	}

	// 9) Metrics expone los contadores
	{
		st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `shelters_adoptions_total{shelter="North"} 1`) {
			t.Fatalf("expected adoption counter in /metrics, got %d", st)
		}
	}
}

func TestHTTP_ErrorMapping(t *testing.T) {
	ts, _ := newServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown animal adopt", "POST", "/animals/ghost/adopt", nil, http.StatusNotFound},
		{"unknown animal move", "POST", "/animals/ghost/move", map[string]any{"target_shelter": 0}, http.StatusNotFound},
		{"index out of range", "POST", "/animals/D1/move", map[string]any{"target_shelter": 7}, http.StatusBadRequest},
		{"non numeric target", "POST", "/animals/D1/move", map[string]any{"target_shelter": "two"}, http.StatusBadRequest},
		{"missing target", "POST", "/animals/D1/move", map[string]any{}, http.StatusBadRequest},
		{"blank health", "PATCH", "/animals/D1/health", map[string]any{"value": " "}, http.StatusBadRequest},
		{"unknown animal status", "PATCH", "/animals/ghost/status", map[string]any{"value": "Sick"}, http.StatusNotFound},
		{"bad adoptable flag", "GET", "/animals?adoptable=maybe", nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, "", tc.body)
		if st != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, st, string(body))
		}
	}
}

func TestHTTP_UpdateHealthAndStatus(t *testing.T) {
	ts, _ := newServer(t)

	st, body := doReq(t, ts.URL, "PATCH", "/animals/D1/health", "staff-2", map[string]any{"value": "Vaccinated"})
	if st != http.StatusOK || !strings.Contains(string(body), "Health updated.") {
		t.Fatalf("expected 200 health update, got %d body=%s", st, string(body))
	}

	// Status "Adopted" manual: sin fee
	st, body = doReq(t, ts.URL, "PATCH", "/animals/D1/status", "staff-2", map[string]any{"value": "Adopted"})
	if st != http.StatusOK || !strings.Contains(string(body), "Status updated.") {
		t.Fatalf("expected 200 status update, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/shelters", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 shelters, got %d", st)
	}
	var resp []struct {
		Index        int     `json:"index"`
		Revenue      float64 `json:"revenue"`
		AdoptedCount int     `json:"adopted_count"`
		Animals      []struct {
			Health string `json:"health"`
			Status string `json:"status"`
		} `json:"animals"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp) != 2 || resp[1].Index != 1 {
		t.Fatalf("unexpected shelters: %s", string(body))
	}
	if resp[0].Revenue != 0 || resp[0].AdoptedCount != 0 {
		t.Fatalf("manual Adopted status must not count: %s", string(body))
	}
	if resp[0].Animals[0].Health != "Vaccinated" || resp[0].Animals[0].Status != "Adopted" {
		t.Fatalf("unexpected animal state: %s", string(body))
	}
}

func TestHTTP_SwaggerDocRegistered(t *testing.T) {
	ts, _ := newServer(t)

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/animals/{animalID}/adopt") {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

func doReq(t *testing.T, baseURL, method, path, staffID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if staffID != "" {
		req.Header.Set("X-Staff-ID", staffID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
