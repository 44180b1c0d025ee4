package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/knupi/practice-reservation/internal/booking"
	"github.com/knupi/practice-reservation/internal/handler"
	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/repository"
	"github.com/knupi/practice-reservation/internal/router"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

var testAdmin = model.Holder{Name: "운영자", ID: "12345"}

func fixedNow() time.Time {
	return time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
}

// newTestServer wires the full route stack against an in-memory store, with
// rate limiting and caching disabled.
func newTestServer() (*echo.Echo, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	resources := timeslot.NewResourceSet(timeslot.DefaultPianos)
	engine := booking.NewEngine(booking.Policy{
		Resources:      resources,
		HolderIDLength: 10,
		Admin:          testAdmin,
	})
	identity := booking.NewIdentity(testAdmin, store).WithClock(fixedNow)
	svc := booking.NewService(store, engine, identity, 14, nil).WithClock(fixedNow)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e,
		handler.NewReservationHandler(svc, identity),
		handler.NewPianoHandler(resources, store),
		handler.NewRankingHandler(svc, 3),
		nil, nil,
	)
	return e, store
}

func doJSON(e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const createBody = `{"holder_name":"김하늘","holder_id":"2023123456","resource":"piano-1","date":"2026-02-10","start":13.0,"end":14.0}`

func TestCreateReservation(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /v1/reservations = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		ID    string  `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.ID == "" {
		t.Error("created reservation has no id")
	}
	if got.Start != 13.0 || got.End != 14.0 {
		t.Errorf("response interval = %v-%v, want 13-14", got.Start, got.End)
	}
}

func TestCreateConflictAndBackToBack(t *testing.T) {
	e, _ := newTestServer()

	if rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first booking = %d, want 201", rec.Code)
	}

	overlap := strings.Replace(createBody, `"start":13.0,"end":14.0`, `"start":13.5,"end":14.5`, 1)
	if rec := doJSON(e, http.MethodPost, "/v1/reservations", overlap, nil); rec.Code != http.StatusConflict {
		t.Errorf("overlapping booking = %d, want 409; body: %s", rec.Code, rec.Body.String())
	}

	backToBack := strings.Replace(createBody, `"start":13.0,"end":14.0`, `"start":14.0,"end":15.0`, 1)
	if rec := doJSON(e, http.MethodPost, "/v1/reservations", backToBack, nil); rec.Code != http.StatusCreated {
		t.Errorf("back-to-back booking = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	e, _ := newTestServer()
	tests := []struct {
		name string
		body string
	}{
		{"off-grid start", strings.Replace(createBody, `"start":13.0`, `"start":13.25`, 1)},
		{"inverted range", strings.Replace(createBody, `"start":13.0,"end":14.0`, `"start":15.0,"end":14.0`, 1)},
		{"unknown piano", strings.Replace(createBody, `"piano-1"`, `"piano-9"`, 1)},
		{"short holder id", strings.Replace(createBody, `"2023123456"`, `"123"`, 1)},
	}
	for _, tt := range tests {
		if rec := doJSON(e, http.MethodPost, "/v1/reservations", tt.body, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400; body: %s", tt.name, rec.Code, rec.Body.String())
		}
	}
}

func TestCancelFlow(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, want 201", rec.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	holderHeaders := map[string]string{"X-Holder-Name": "김하늘", "X-Holder-Id": "2023123456"}
	strangerHeaders := map[string]string{"X-Holder-Name": "이서준", "X-Holder-Id": "2021000000"}

	if rec := doJSON(e, http.MethodDelete, "/v1/reservations/"+created.ID, "", strangerHeaders); rec.Code != http.StatusForbidden {
		t.Errorf("cancel by stranger = %d, want 403", rec.Code)
	}
	if rec := doJSON(e, http.MethodDelete, "/v1/reservations/"+created.ID, "", holderHeaders); rec.Code != http.StatusNoContent {
		t.Errorf("cancel by holder = %d, want 204; body: %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(e, http.MethodDelete, "/v1/reservations/"+created.ID, "", holderHeaders); rec.Code != http.StatusNotFound {
		t.Errorf("second cancel = %d, want 404", rec.Code)
	}
}

func TestLookupScoping(t *testing.T) {
	e, _ := newTestServer()

	if rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody, nil); rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, want 201", rec.Code)
	}

	var out struct {
		Reservations []struct {
			HolderID string `json:"holder_id"`
		} `json:"reservations"`
	}

	rec := doJSON(e, http.MethodGet, "/v1/reservations?holder_name=김하늘&holder_id=2023123456", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Reservations) != 1 {
		t.Errorf("holder lookup returned %d reservations, want 1", len(out.Reservations))
	}

	rec = doJSON(e, http.MethodGet, "/v1/reservations?holder_name=김하늘&holder_id=2020999999", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Reservations) != 0 {
		t.Errorf("mismatched id lookup returned %d reservations, want 0", len(out.Reservations))
	}

	rec = doJSON(e, http.MethodGet, "/v1/reservations?holder_name=운영자&holder_id=12345", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Reservations) != 1 {
		t.Errorf("administrative lookup returned %d reservations, want 1", len(out.Reservations))
	}
}

func TestSlotOccupancy(t *testing.T) {
	e, _ := newTestServer()

	if rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody, nil); rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, want 201", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/v1/pianos/piano-1/slots?date=2026-02-10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("slots = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Slots []struct {
			Start     float64 `json:"start"`
			Available bool    `json:"available"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Slots) != 30 {
		t.Fatalf("occupancy bar has %d cells, want 30", len(out.Slots))
	}
	for _, s := range out.Slots {
		booked := s.Start >= 13.0 && s.Start < 14.0
		if s.Available == booked {
			t.Errorf("slot %v available=%v, want %v", s.Start, s.Available, !booked)
		}
	}

	if rec := doJSON(e, http.MethodGet, "/v1/pianos/piano-9/slots?date=2026-02-10", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown piano slots = %d, want 404", rec.Code)
	}
}

func TestRankingEndpoint(t *testing.T) {
	e, _ := newTestServer()

	if rec := doJSON(e, http.MethodPost, "/v1/reservations", createBody, nil); rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, want 201", rec.Code)
	}

	rec := doJSON(e, http.MethodGet, "/v1/rankings/monthly?year=2026&month=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ranking = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Ranking []struct {
			Name       string  `json:"name"`
			TotalHours float64 `json:"total_hours"`
		} `json:"ranking"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Ranking) != 1 {
		t.Fatalf("ranking has %d entries, want 1", len(out.Ranking))
	}
	if out.Ranking[0].Name != "김하늘" || out.Ranking[0].TotalHours != 1.0 {
		t.Errorf("ranking[0] = %+v, want 김하늘 with 1.0 hours", out.Ranking[0])
	}

	if rec := doJSON(e, http.MethodGet, "/v1/rankings/monthly?month=13", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid month = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer()
	rec := doJSON(e, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q, want 200 ok", rec.Code, rec.Body.String())
	}
}
