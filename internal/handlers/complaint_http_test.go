package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Abhyam-Mathur/nagar-team/internal/models"
	"github.com/Abhyam-Mathur/nagar-team/internal/repository"
	"github.com/Abhyam-Mathur/nagar-team/internal/service"
)

type fakeComplaintRepo struct {
	complaints []models.Complaint
	updates    map[string][]models.StatusUpdate
	assigned   []repository.Assignment
	listErr    error
}

func (f *fakeComplaintRepo) ListPage(ctx context.Context, fl repository.Filter, p repository.Page) ([]models.Complaint, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	fl = fl.Normalize()
	var matched []models.Complaint
	for _, c := range f.complaints {
		if fl.Status != "" && c.Status != fl.Status {
			continue
		}
		if fl.IssueType != "" && c.IssueType != fl.IssueType {
			continue
		}
		matched = append(matched, c)
	}
	limit, offset := p.Range()
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeComplaintRepo) Get(ctx context.Context, id string) (*models.Complaint, error) {
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			return &f.complaints[i], nil
		}
	}
	return nil, nil
}

func (f *fakeComplaintRepo) Locations(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	for _, c := range f.complaints {
		if c.Latitude != nil && c.Longitude != nil {
			out = append(out, models.Location{ID: c.ID, Code: c.Code, Status: c.Status, Latitude: *c.Latitude, Longitude: *c.Longitude})
		}
	}
	return out, nil
}

func (f *fakeComplaintRepo) StatusValues(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(f.complaints))
	for _, c := range f.complaints {
		out = append(out, c.Status)
	}
	return out, nil
}

func (f *fakeComplaintRepo) Assign(ctx context.Context, id string, a repository.Assignment) (*models.Complaint, error) {
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].Status = a.Status
			f.complaints[i].AssignedTo = a.WorkerName
			f.assigned = append(f.assigned, a)
			if f.updates == nil {
				f.updates = map[string][]models.StatusUpdate{}
			}
			f.updates[id] = append(f.updates[id], models.StatusUpdate{
				ComplaintID:   id,
				Status:        a.Status,
				WorkerName:    a.WorkerName,
				WorkerContact: a.WorkerContact,
				Note:          a.Note,
				CreatedAt:     time.Now(),
			})
			return &f.complaints[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeComplaintRepo) ListUpdates(ctx context.Context, id string) ([]models.StatusUpdate, error) {
	return f.updates[id], nil
}

func newTestRouter(repo *fakeComplaintRepo, pageSize int) http.Handler {
	h := NewComplaintHTTP(repo, service.NewAssignmentService(repo, zerolog.Nop()), pageSize)
	r := chi.NewRouter()
	r.Route("/api/complaints", func(r chi.Router) {
		r.Get("/", h.List())
		r.Get("/locations", h.Locations())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get())
			r.Get("/updates", h.Updates())
			r.Post("/assign", h.Assign())
		})
	})
	return r
}

func seedComplaints(n int) []models.Complaint {
	out := make([]models.Complaint, n)
	for i := range out {
		out[i] = models.Complaint{
			ID:        "id-" + string(rune('a'+i)),
			Code:      "NGR-" + string(rune('A'+i)),
			IssueType: "Garbage",
			Status:    models.StatusRegistered,
			CreatedAt: time.Now(),
		}
	}
	return out
}

func TestListEnvelope(t *testing.T) {
	repo := &fakeComplaintRepo{complaints: seedComplaints(12)}
	r := newTestRouter(repo, 5)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/complaints?page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Total-Count"); got != "12" {
		t.Errorf("X-Total-Count = %q", got)
	}

	var body struct {
		Items    []models.Complaint `json:"items"`
		Total    int                `json:"total"`
		Page     int                `json:"page"`
		PageSize int                `json:"pageSize"`
		HasPrev  bool               `json:"hasPrev"`
		HasNext  bool               `json:"hasNext"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 5 || body.Total != 12 || body.Page != 2 || body.PageSize != 5 {
		t.Errorf("body = %+v", body)
	}
	if !body.HasPrev || !body.HasNext {
		t.Errorf("hasPrev=%v hasNext=%v, want both true on middle page", body.HasPrev, body.HasNext)
	}
}

func TestListFilterConsistentTotal(t *testing.T) {
	cs := seedComplaints(7)
	cs[0].Status = models.StatusResolved
	cs[1].Status = models.StatusResolved
	repo := &fakeComplaintRepo{complaints: cs}
	r := newTestRouter(repo, 5)

	for _, page := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/complaints?status=Resolved&page="+page, nil))
		if got := rec.Header().Get("X-Total-Count"); got != "2" {
			t.Errorf("page %s: X-Total-Count = %q, want 2", page, got)
		}
	}
}

func TestGetNotFound(t *testing.T) {
	r := newTestRouter(&fakeComplaintRepo{}, 5)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/complaints/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAssignEndpoint(t *testing.T) {
	repo := &fakeComplaintRepo{complaints: seedComplaints(1)}
	r := newTestRouter(repo, 5)

	payload := `{"status":"Assigned","workerName":"Ravi Kumar","workerContact":"+911234567890","note":"pothole crew"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/complaints/id-a/assign", strings.NewReader(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var c models.Complaint
	if err := json.Unmarshal(rec.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Status != "Assigned" || c.AssignedTo != "Ravi Kumar" {
		t.Errorf("complaint = %+v", c)
	}

	// Exactly one update, exactly one audit row, matching fields.
	if len(repo.assigned) != 1 {
		t.Fatalf("assign calls = %d, want 1", len(repo.assigned))
	}
	ups := repo.updates["id-a"]
	if len(ups) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(ups))
	}
	u := ups[0]
	if u.ComplaintID != "id-a" || u.Status != "Assigned" || u.WorkerName != "Ravi Kumar" {
		t.Errorf("audit row = %+v", u)
	}
}

func TestAssignValidation(t *testing.T) {
	repo := &fakeComplaintRepo{complaints: seedComplaints(1)}
	r := newTestRouter(repo, 5)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/complaints/id-a/assign",
		strings.NewReader(`{"status":"Assigned"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(repo.assigned) != 0 {
		t.Error("invalid assignment reached the store")
	}
}

func TestAssignUnknownComplaint(t *testing.T) {
	repo := &fakeComplaintRepo{}
	r := newTestRouter(repo, 5)

	payload := `{"status":"Assigned","workerName":"Ravi","workerContact":"+911234567890"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/complaints/ghost/assign", strings.NewReader(payload)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdatesEndpoint(t *testing.T) {
	repo := &fakeComplaintRepo{complaints: seedComplaints(1)}
	r := newTestRouter(repo, 5)

	// Two assignments produce two audit rows.
	for _, status := range []string{"Assigned", "Resolved"} {
		rec := httptest.NewRecorder()
		payload := `{"status":"` + status + `","workerName":"Ravi","workerContact":"+911234567890"}`
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/complaints/id-a/assign", strings.NewReader(payload)))
		if rec.Code != http.StatusOK {
			t.Fatalf("assign %s: status = %d", status, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/complaints/id-a/updates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Items []models.StatusUpdate `json:"items"`
		Total int                   `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 || body.Items[0].Status != "Assigned" || body.Items[1].Status != "Resolved" {
		t.Errorf("body = %+v", body)
	}
}

func TestLocationsEndpoint(t *testing.T) {
	lat, lng := 26.8467, 80.9462
	cs := seedComplaints(3)
	cs[1].Latitude, cs[1].Longitude = &lat, &lng
	repo := &fakeComplaintRepo{complaints: cs}
	r := newTestRouter(repo, 5)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/complaints/locations", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Items []models.Location `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || body.Items[0].Latitude != lat {
		t.Errorf("body = %+v", body)
	}
}
