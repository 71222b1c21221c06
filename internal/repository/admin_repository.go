package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketgate/api/internal/models"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `admin_id, username, password, first_name, middle_name, last_name, admin_type, created_at`

func scanAdmin(row pgx.Row) (models.Admin, error) {
	var a models.Admin
	if err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.FirstName,
		&a.MiddleName,
		&a.LastName,
		&a.AdminType,
		&a.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Admin{}, ErrAdminNotFound
		}
		return models.Admin{}, err
	}
	return a, nil
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admin WHERE username = $1`
	return scanAdmin(r.pool.QueryRow(ctx, query, username))
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (models.Admin, error) {
	const query = `SELECT ` + adminColumns + ` FROM admin WHERE admin_id = $1`
	return scanAdmin(r.pool.QueryRow(ctx, query, id))
}
