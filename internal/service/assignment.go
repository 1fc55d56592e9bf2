package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Abhyam-Mathur/nagar-team/internal/models"
	"github.com/Abhyam-Mathur/nagar-team/internal/repository"

	"github.com/rs/zerolog"
)

// ErrMissingFields rejects an assignment before any store call is made.
var ErrMissingFields = errors.New("worker name, worker contact and status are required")

// AssignmentService commits the triage transition: the complaint's
// status/assignee change and the audit row land in one transaction, so a
// failed audit insert never leaves the complaint updated but unaudited.
type AssignmentService struct {
	repo repository.ComplaintRepository
	log  zerolog.Logger
}

func NewAssignmentService(repo repository.ComplaintRepository, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{repo: repo, log: log}
}

func (s *AssignmentService) Assign(ctx context.Context, complaintID string, a repository.Assignment) (*models.Complaint, error) {
	a.Status = strings.TrimSpace(a.Status)
	a.WorkerName = strings.TrimSpace(a.WorkerName)
	a.WorkerContact = strings.TrimSpace(a.WorkerContact)
	a.Note = strings.TrimSpace(a.Note)

	if complaintID == "" || a.Status == "" || a.WorkerName == "" || a.WorkerContact == "" {
		return nil, ErrMissingFields
	}

	c, err := s.repo.Assign(ctx, complaintID, a)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("complaint", complaintID).
		Str("status", a.Status).
		Str("worker", a.WorkerName).
		Msg("complaint assigned")
	return c, nil
}
