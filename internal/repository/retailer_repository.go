package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketgate/api/internal/models"
)

var ErrRetailerNotFound = errors.New("retailer not found")

type RetailerRepository struct {
	pool *pgxpool.Pool
}

func NewRetailerRepository(pool *pgxpool.Pool) *RetailerRepository {
	return &RetailerRepository{pool: pool}
}

const retailerColumns = `id, username, password, email, first_name, middle_name, last_name, location_id, created_at`

func scanRetailer(row pgx.Row) (models.Retailer, error) {
	var ret models.Retailer
	if err := row.Scan(
		&ret.ID,
		&ret.Username,
		&ret.PasswordHash,
		&ret.Email,
		&ret.FirstName,
		&ret.MiddleName,
		&ret.LastName,
		&ret.LocationID,
		&ret.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Retailer{}, ErrRetailerNotFound
		}
		return models.Retailer{}, err
	}
	return ret, nil
}

func (r *RetailerRepository) FindByUsername(ctx context.Context, username string) (models.Retailer, error) {
	const query = `SELECT ` + retailerColumns + ` FROM retailer WHERE username = $1`
	return scanRetailer(r.pool.QueryRow(ctx, query, username))
}

func (r *RetailerRepository) GetByID(ctx context.Context, id int64) (models.Retailer, error) {
	const query = `SELECT ` + retailerColumns + ` FROM retailer WHERE id = $1`
	return scanRetailer(r.pool.QueryRow(ctx, query, id))
}
