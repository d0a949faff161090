package postgres

import (
	"context"
	"database/sql"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

type appointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

const appointmentSelect = `SELECT a.id, a.user_id, a.username, a.doctor_id, d.name, a.disease, a.appointment_date, a.status
	FROM appointments a JOIN doctors d ON d.id = a.doctor_id`

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	if err := row.Scan(&a.ID, &a.UserID, &a.Username, &a.DoctorID, &a.DoctorName, &a.Disease, &a.AppointmentDate, &a.Status); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *appointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	query := `INSERT INTO appointments (user_id, username, doctor_id, disease, appointment_date, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, a.UserID, a.Username, a.DoctorID, a.Disease, a.AppointmentDate, a.Status).Scan(&a.ID)
}

func (r *appointmentRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Appointment, error) {
	a, err := scanAppointment(conn(ctx, r.db).QueryRowContext(ctx, appointmentSelect+` WHERE a.id = $1 FOR UPDATE OF a`, id))
	return a, notFound(err)
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Appointment, error) {
	return r.list(ctx, appointmentSelect+` WHERE a.user_id = $1 ORDER BY a.appointment_date DESC`, userID)
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	return r.list(ctx, appointmentSelect+` ORDER BY a.appointment_date DESC`)
}

func (r *appointmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Appointment, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts := make([]domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *a)
	}
	return appts, rows.Err()
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int32, status domain.AppointmentStatus) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	return expectOne(res, err)
}

func (r *appointmentRepository) Delete(ctx context.Context, id int32) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return expectOne(res, err)
}
