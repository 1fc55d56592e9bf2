package service

import (
	"context"
	"strings"

	"github.com/Abhyam-Mathur/nagar-team/internal/models"
	"github.com/Abhyam-Mathur/nagar-team/internal/repository"
)

type Summary struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Total      int `json:"total"`
}

// Summarize reduces raw status values to the dashboard counters.
// Matching is case-insensitive; a status matching no known case counts
// toward Total only, so pending+inProgress+resolved <= total always holds.
func Summarize(statuses []string) Summary {
	var s Summary
	for _, st := range statuses {
		switch {
		case strings.EqualFold(st, models.StatusRegistered):
			s.Pending++
		case strings.EqualFold(st, models.StatusAssigned), strings.EqualFold(st, models.StatusInProgress):
			s.InProgress++
		case strings.EqualFold(st, models.StatusResolved):
			s.Resolved++
		}
		s.Total++
	}
	return s
}

// StatsService reads the full status column, unpaginated and unfiltered,
// and reduces it locally.
type StatsService struct {
	repo repository.ComplaintRepository
}

func NewStatsService(repo repository.ComplaintRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Summary(ctx context.Context) (Summary, error) {
	statuses, err := s.repo.StatusValues(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(statuses), nil
}
