package postgres

import (
	"context"
	"database/sql"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

type doctorRepository struct {
	db *sql.DB
}

func NewDoctorRepository(db *sql.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	query := `INSERT INTO doctors (name, contact_no, specialization, is_available) VALUES ($1, $2, $3, $4) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, d.Name, d.ContactNo, d.Specialization, d.IsAvailable).Scan(&d.ID)
}

func (r *doctorRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Doctor, error) {
	d := &domain.Doctor{}
	query := `SELECT id, name, contact_no, specialization, is_available FROM doctors WHERE id = $1 FOR UPDATE`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.ContactNo, &d.Specialization, &d.IsAvailable)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]domain.Doctor, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT id, name, contact_no, specialization, is_available FROM doctors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		var d domain.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.ContactNo, &d.Specialization, &d.IsAvailable); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM doctors`)
}

// LockTable takes a self-conflicting table lock. Plain reads still go through.
func (r *doctorRepository) LockTable(ctx context.Context) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `LOCK TABLE doctors IN SHARE ROW EXCLUSIVE MODE`)
	return err
}

func (r *doctorRepository) SetAvailability(ctx context.Context, id int32, available bool) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE doctors SET is_available = $1 WHERE id = $2`, available, id)
	return expectOne(res, err)
}
