package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/Abhyam-Mathur/nagar-team/internal/models"
	"github.com/Abhyam-Mathur/nagar-team/internal/repository"
	"github.com/Abhyam-Mathur/nagar-team/internal/service"
	"github.com/Abhyam-Mathur/nagar-team/internal/utils"
)

// ComplaintHTTP wires HTTP endpoints to the complaint repository and the
// assignment workflow.
type ComplaintHTTP struct {
	repo     repository.ComplaintRepository
	assigner *service.AssignmentService
	pageSize int
}

func NewComplaintHTTP(repo repository.ComplaintRepository, assigner *service.AssignmentService, pageSize int) *ComplaintHTTP {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &ComplaintHTTP{repo: repo, assigner: assigner, pageSize: pageSize}
}

// -----------------------------------------------------------------------------
// GET /api/complaints?status=&issueType=&page=
// -----------------------------------------------------------------------------
func (h *ComplaintHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.Filter{
			Status:    strings.TrimSpace(qv.Get("status")),
			IssueType: strings.TrimSpace(qv.Get("issueType")),
		}
		p := repository.Page{
			Number: utils.QueryInt(qv, "page", 1),
			Size:   h.pageSize,
		}.Clamp()

		items, total, err := h.repo.ListPage(r.Context(), f, p)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.Complaint{}
		}

		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{
			"items":    items,
			"total":    total,
			"page":     p.Number,
			"pageSize": p.Size,
			"hasPrev":  p.HasPrev(),
			"hasNext":  p.HasNext(total),
		})
	}
}

// -----------------------------------------------------------------------------
// GET /api/complaints/{id}
// -----------------------------------------------------------------------------
func (h *ComplaintHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		c, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if c == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, c)
	}
}

// -----------------------------------------------------------------------------
// GET /api/complaints/{id}/updates — audit trail, oldest first
// -----------------------------------------------------------------------------
func (h *ComplaintHTTP) Updates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		ups, err := h.repo.ListUpdates(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if ups == nil {
			ups = []models.StatusUpdate{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": ups, "total": len(ups)})
	}
}

// -----------------------------------------------------------------------------
// GET /api/complaints/locations — map view data
// -----------------------------------------------------------------------------
func (h *ComplaintHTTP) Locations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locs, err := h.repo.Locations(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if locs == nil {
			locs = []models.Location{}
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": locs, "total": len(locs)})
	}
}

// -----------------------------------------------------------------------------
// POST /api/complaints/{id}/assign
// -----------------------------------------------------------------------------
func (h *ComplaintHTTP) Assign() http.HandlerFunc {
	type inDTO struct {
		Status        string `json:"status"`
		WorkerName    string `json:"workerName"`
		WorkerContact string `json:"workerContact"`
		Note          string `json:"note"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := h.assigner.Assign(r.Context(), id, repository.Assignment{
			Status:        in.Status,
			WorkerName:    in.WorkerName,
			WorkerContact: in.WorkerContact,
			Note:          in.Note,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingFields):
				utils.Error(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, pgx.ErrNoRows):
				utils.Error(w, http.StatusNotFound, "not found")
			default:
				utils.Error(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		utils.JSON(w, http.StatusOK, c)
	}
}
