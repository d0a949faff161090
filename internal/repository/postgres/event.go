package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

const eventColumns = `id, name, date, location, description, capacity, ticket_type, ticket_price, is_paid, booked_users, created_at`

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var booked pq.StringArray
	err := row.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Description, &e.Capacity,
		&e.TicketType, &e.TicketPrice, &e.IsPaid, &booked, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.BookedUsers = []string(booked)
	if e.BookedUsers == nil {
		e.BookedUsers = []string{}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (name, date, location, description, capacity, ticket_type, ticket_price, is_paid, booked_users, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	e.CreatedAt = time.Now().UTC()
	if e.BookedUsers == nil {
		e.BookedUsers = []string{}
	}
	return conn(ctx, r.db).QueryRowContext(ctx, query, e.Name, e.Date, e.Location, e.Description, e.Capacity,
		e.TicketType, e.TicketPrice, e.IsPaid, pq.Array(e.BookedUsers), e.CreatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e, err := scanEvent(conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	return e, notFound(err)
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Event, error) {
	logger.DatabaseCall("SELECT FOR UPDATE", "events", "eventID", id)
	e, err := scanEvent(conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id))
	return e, notFound(err)
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET name=$1, date=$2, location=$3, description=$4, capacity=$5, ticket_type=$6, ticket_price=$7, is_paid=$8 WHERE id=$9`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, e.Name, e.Date, e.Location, e.Description, e.Capacity,
		e.TicketType, e.TicketPrice, e.IsPaid, e.ID)
	return expectOne(res, err)
}

func (r *eventRepository) AddBooking(ctx context.Context, id int32, username string) error {
	logger.DatabaseCall("UPDATE", "events.booked_users", "eventID", id, "username", username)
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE events SET booked_users = array_append(booked_users, $1) WHERE id = $2`, username, id)
	err = expectOne(res, err)
	logger.DatabaseResult("UPDATE", 1, err, "eventID", id)
	return err
}

func (r *eventRepository) Delete(ctx context.Context, id int32) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	return expectOne(res, err)
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM events`)
}
