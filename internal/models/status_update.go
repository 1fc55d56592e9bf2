package models

import "time"

// StatusUpdate is an append-only audit row recording a status transition.
// Rows are never modified or deleted once written.
type StatusUpdate struct {
	ID            string    `json:"id"`
	ComplaintID   string    `json:"complaintId"`
	Status        string    `json:"status"`
	WorkerName    string    `json:"workerName"`
	WorkerContact string    `json:"workerContact"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
}
