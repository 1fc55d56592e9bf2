package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/Abhyam-Mathur/nagar-team/internal/models"
	"github.com/Abhyam-Mathur/nagar-team/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ComplaintRepo struct{ db *pgxpool.Pool }

func NewComplaintRepo(db *pgxpool.Pool) *ComplaintRepo { return &ComplaintRepo{db: db} }

const complaintCols = `
	c.id, c.code, c.issue_type, c.description, c.city, c.state,
	c.latitude, c.longitude, c.status, COALESCE(c.assigned_to, ''), c.created_at`

// -----------------------------------------------------------------------------
// Paged listing: rows plus exact total under the identical predicate.
// Ordering and filtering happen entirely in SQL so the reported total
// always matches the returned page.
// -----------------------------------------------------------------------------
func (r *ComplaintRepo) ListPage(ctx context.Context, f repository.Filter, p repository.Page) ([]models.Complaint, int, error) {
	f = f.Normalize()
	limit, offset := p.Range()

	whereSQL, args := buildComplaintWhere(f)

	sql := `
		SELECT` + complaintCols + `
		FROM complaints c
		` + whereSQL + `
		ORDER BY c.created_at DESC
		LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)

	rows, err := r.db.Query(ctx, sql, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Complaint
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(
			&c.ID, &c.Code, &c.IssueType, &c.Description, &c.City, &c.State,
			&c.Latitude, &c.Longitude, &c.Status, &c.AssignedTo, &c.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM complaints c `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ComplaintRepo) Get(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	err := r.db.QueryRow(ctx, `
		SELECT`+complaintCols+`
		FROM complaints c
		WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.Code, &c.IssueType, &c.Description, &c.City, &c.State,
		&c.Latitude, &c.Longitude, &c.Status, &c.AssignedTo, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Locations returns the map-view projection; rows missing either
// coordinate are skipped at the query layer.
func (r *ComplaintRepo) Locations(ctx context.Context) ([]models.Location, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, status, latitude, longitude
		FROM complaints
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Code, &l.Status, &l.Latitude, &l.Longitude); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// StatusValues feeds the stats aggregator: the full status column,
// unfiltered and unpaginated, reduced client-side by the caller.
func (r *ComplaintRepo) StatusValues(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT status FROM complaints`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Assignment: status/assignee update + audit append in one transaction.
// -----------------------------------------------------------------------------
func (r *ComplaintRepo) Assign(ctx context.Context, complaintID string, a repository.Assignment) (*models.Complaint, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE complaints SET status=$1, assigned_to=$2 WHERE id=$3
	`, a.Status, a.WorkerName, complaintID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO status_updates (complaint_id, status, worker_name, worker_contact, note)
		VALUES ($1,$2,$3,$4,$5)
	`, complaintID, a.Status, a.WorkerName, a.WorkerContact, a.Note); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, complaintID)
}

// ListUpdates returns the audit trail for one complaint, oldest first.
func (r *ComplaintRepo) ListUpdates(ctx context.Context, complaintID string) ([]models.StatusUpdate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, complaint_id, status, worker_name, worker_contact, COALESCE(note, ''), created_at
		FROM status_updates
		WHERE complaint_id = $1
		ORDER BY created_at ASC
	`, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StatusUpdate
	for rows.Next() {
		var u models.StatusUpdate
		if err := rows.Scan(&u.ID, &u.ComplaintID, &u.Status, &u.WorkerName, &u.WorkerContact, &u.Note, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// buildComplaintWhere composes the WHERE clause and args for the list
// filters. Unset fields contribute no predicate.
func buildComplaintWhere(f repository.Filter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "c.status = $"+itoa(len(args)))
	}
	if f.IssueType != "" {
		args = append(args, f.IssueType)
		clauses = append(clauses, "c.issue_type = $"+itoa(len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func itoa(i int) string { return strconv.Itoa(i) }
