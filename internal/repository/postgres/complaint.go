package postgres

import (
	"context"
	"database/sql"
	"time"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

const complaintColumns = `id, user_id, username, complaint_type, complaint_details, status, created_at`

type complaintRepository struct {
	db *sql.DB
}

func NewComplaintRepository(db *sql.DB) repository.ComplaintRepository {
	return &complaintRepository{db: db}
}

func scanComplaint(row rowScanner) (*domain.Complaint, error) {
	c := &domain.Complaint{}
	if err := row.Scan(&c.ID, &c.UserID, &c.Username, &c.ComplaintType, &c.ComplaintDetails, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *complaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	query := `INSERT INTO complaints (user_id, username, complaint_type, complaint_details, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	c.CreatedAt = time.Now().UTC()
	return conn(ctx, r.db).QueryRowContext(ctx, query, c.UserID, c.Username, c.ComplaintType, c.ComplaintDetails, c.Status, c.CreatedAt).Scan(&c.ID)
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Complaint, error) {
	return r.list(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return r.list(ctx, `SELECT `+complaintColumns+` FROM complaints ORDER BY created_at DESC`)
}

func (r *complaintRepository) ListRecent(ctx context.Context, limit int) ([]domain.Complaint, error) {
	return r.list(ctx, `SELECT `+complaintColumns+` FROM complaints ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *complaintRepository) list(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	complaints := make([]domain.Complaint, 0)
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, *c)
	}
	return complaints, rows.Err()
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id int32, status domain.ComplaintStatus) (*domain.Complaint, error) {
	query := `UPDATE complaints SET status = $1 WHERE id = $2 RETURNING ` + complaintColumns
	c, err := scanComplaint(conn(ctx, r.db).QueryRowContext(ctx, query, status, id))
	return c, notFound(err)
}

func (r *complaintRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM complaints`)
}

func (r *complaintRepository) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM complaints WHERE status = $1`, status)
}
