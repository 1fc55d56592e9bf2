package handlers

import (
	"net/http"

	"github.com/Abhyam-Mathur/nagar-team/internal/service"
	"github.com/Abhyam-Mathur/nagar-team/internal/utils"
)

type StatsHTTP struct {
	stats *service.StatsService
}

func NewStatsHTTP(s *service.StatsService) *StatsHTTP { return &StatsHTTP{stats: s} }

// GET /api/stats
// Returns: { pending, inProgress, resolved, total }
func (h *StatsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := h.stats.Summary(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, sum)
	}
}
