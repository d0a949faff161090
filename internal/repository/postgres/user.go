package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

const userColumns = `id, username, password_hash, name, phone, COALESCE(email, ''), balance,
	marla_size, COALESCE(house_choice, ''), role, permissions, is_active, created_at`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Phone, &u.Email, &u.Balance,
		&u.House.MarlaSize, &u.House.Choice, &u.Role, &u.Permissions, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, password_hash, name, phone, email, balance, marla_size, house_choice, role, permissions, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	u.CreatedAt = time.Now().UTC()
	logger.DatabaseCall("INSERT", "users", "username", u.Username)
	err := conn(ctx, r.db).QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Name, u.Phone, u.Email, u.Balance,
		u.House.MarlaSize, u.House.Choice, u.Role, u.Permissions, u.IsActive, u.CreatedAt).Scan(&u.ID)
	logger.DatabaseResult("INSERT", 1, err, "username", u.Username)
	return duplicate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	return u, notFound(err)
}

func (r *userRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	logger.DatabaseCall("SELECT FOR UPDATE", "users", "userID", id)
	u, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	return u, notFound(err)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, query, username))
	return u, notFound(err)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

func (r *userRepository) ListActiveResidents(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 AND is_active = true ORDER BY id`, domain.RoleUser)
}

func (r *userRepository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	logger.EnterMethod("userRepository.list")

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError("userRepository.list", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.ExitMethodWithError("userRepository.list", err)
			return nil, err
		}
		users = append(users, *u)
	}

	logger.ExitMethod("userRepository.list", "count", len(users))
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, phone=$2, email=$3, balance=$4, marla_size=$5, house_choice=$6, role=$7, permissions=$8, is_active=$9 WHERE id=$10`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, u.Name, u.Phone, u.Email, u.Balance,
		u.House.MarlaSize, u.House.Choice, u.Role, u.Permissions, u.IsActive, u.ID)
	return expectOne(res, err)
}

func (r *userRepository) UpdateBalance(ctx context.Context, id int32, balance decimal.Decimal) error {
	logger.DatabaseCall("UPDATE", "users.balance", "userID", id)
	res, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE users SET balance = $1 WHERE id = $2`, balance, id)
	err = expectOne(res, err)
	logger.DatabaseResult("UPDATE", 1, err, "userID", id)
	return err
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
}

func (r *userRepository) ExistsWithRole(ctx context.Context, role domain.Role) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`, role).Scan(&exists)
	return exists, err
}
