package repository

import "context"
import "github.com/Abhyam-Mathur/nagar-team/internal/models"

type ComplaintRepository interface {
	// ListPage returns one page of complaints matching the filter plus the
	// exact total match count under the same predicate.
	ListPage(ctx context.Context, f Filter, p Page) ([]models.Complaint, int, error)
	Get(ctx context.Context, id string) (*models.Complaint, error)
	Locations(ctx context.Context) ([]models.Location, error)
	// StatusValues returns the status column of every complaint row,
	// unfiltered and unpaginated.
	StatusValues(ctx context.Context) ([]string, error)
	// Assign updates the complaint's status/assignee and appends the audit
	// row in a single transaction.
	Assign(ctx context.Context, complaintID string, a Assignment) (*models.Complaint, error)
	ListUpdates(ctx context.Context, complaintID string) ([]models.StatusUpdate, error)
}

// Assignment carries the fields AssignmentWorkflow writes.
type Assignment struct {
	Status        string
	WorkerName    string
	WorkerContact string
	Note          string
}
