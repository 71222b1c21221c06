package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketgate/api/internal/models"
)

var ErrConsumerNotFound = errors.New("consumer not found")

type ConsumerRepository struct {
	pool *pgxpool.Pool
}

func NewConsumerRepository(pool *pgxpool.Pool) *ConsumerRepository {
	return &ConsumerRepository{pool: pool}
}

const consumerColumns = `id, username, password, email, first_name, middle_name, last_name, gender, birthdate, age, location_id, created_at`

func scanConsumer(row pgx.Row) (models.Consumer, error) {
	var c models.Consumer
	if err := row.Scan(
		&c.ID,
		&c.Username,
		&c.PasswordHash,
		&c.Email,
		&c.FirstName,
		&c.MiddleName,
		&c.LastName,
		&c.Gender,
		&c.Birthdate,
		&c.Age,
		&c.LocationID,
		&c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Consumer{}, ErrConsumerNotFound
		}
		return models.Consumer{}, err
	}
	return c, nil
}

// FindByUsername looks up a consumer by exact username match.
// Usernames are unique within the consumer table only.
func (r *ConsumerRepository) FindByUsername(ctx context.Context, username string) (models.Consumer, error) {
	const query = `SELECT ` + consumerColumns + ` FROM consumer WHERE username = $1`
	return scanConsumer(r.pool.QueryRow(ctx, query, username))
}

func (r *ConsumerRepository) GetByID(ctx context.Context, id int64) (models.Consumer, error) {
	const query = `SELECT ` + consumerColumns + ` FROM consumer WHERE id = $1`
	return scanConsumer(r.pool.QueryRow(ctx, query, id))
}
