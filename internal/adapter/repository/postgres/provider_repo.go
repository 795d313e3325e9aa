package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metzakaria/vendicore/internal/domain"
)

// ProviderRepository implements usecase.ProviderRepository backed by PostgreSQL.
type ProviderRepository struct {
	pool *pgxpool.Pool
}

// NewProviderRepository creates a new ProviderRepository.
func NewProviderRepository(pool *pgxpool.Pool) *ProviderRepository {
	return &ProviderRepository{pool: pool}
}

const providerColumns = `id, name, channel, account_number, active, created_at, updated_at`

// Create inserts a new provider account.
func (r *ProviderRepository) Create(ctx context.Context, provider *domain.ProviderAccount) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO provider_accounts (id, name, channel, account_number, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		provider.ID,
		provider.Name,
		provider.Channel,
		provider.AccountNumber,
		provider.Active,
		timeToPgTimestamptz(provider.CreatedAt),
		timeToPgTimestamptz(provider.UpdatedAt),
	)
	return err
}

// GetByID retrieves a provider account by ID.
func (r *ProviderRepository) GetByID(ctx context.Context, id string) (*domain.ProviderAccount, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+providerColumns+`
		FROM provider_accounts
		WHERE id = $1`, id)

	return scanProvider(row)
}

// List retrieves provider accounts ordered by creation time, newest first.
func (r *ProviderRepository) List(ctx context.Context, limit, offset int) ([]*domain.ProviderAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+providerColumns+`
		FROM provider_accounts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*domain.ProviderAccount
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, rows.Err()
}

func scanProvider(row pgx.Row) (*domain.ProviderAccount, error) {
	var (
		p         domain.ProviderAccount
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&p.ID, &p.Name, &p.Channel, &p.AccountNumber, &p.Active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
