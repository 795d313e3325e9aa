package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metzakaria/vendicore/internal/domain"
)

// DiscountRepository implements usecase.DiscountRepository backed by PostgreSQL.
type DiscountRepository struct {
	pool *pgxpool.Pool
}

// NewDiscountRepository creates a new DiscountRepository.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

const discountColumns = `id, product_id, merchant_id, rate, active, created_at, updated_at`

// Create inserts a new discount.
func (r *DiscountRepository) Create(ctx context.Context, discount *domain.Discount) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO discounts (id, product_id, merchant_id, rate, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		discount.ID,
		discount.ProductID,
		discount.MerchantID,
		decimalToNumeric(discount.Rate),
		discount.Active,
		timeToPgTimestamptz(discount.CreatedAt),
		timeToPgTimestamptz(discount.UpdatedAt),
	)
	return err
}

// GetByID retrieves a discount by ID.
func (r *DiscountRepository) GetByID(ctx context.Context, id string) (*domain.Discount, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+discountColumns+`
		FROM discounts
		WHERE id = $1`, id)

	return scanDiscount(row)
}

// ListByMerchant retrieves discounts granted to a merchant, newest first.
func (r *DiscountRepository) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.Discount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+discountColumns+`
		FROM discounts
		WHERE merchant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, merchantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []*domain.Discount
	for rows.Next() {
		discount, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, discount)
	}
	return discounts, rows.Err()
}

func scanDiscount(row pgx.Row) (*domain.Discount, error) {
	var (
		d         domain.Discount
		rate      pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&d.ID, &d.ProductID, &d.MerchantID, &rate, &d.Active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDiscountNotFound
		}
		return nil, err
	}

	d.Rate = numericToDecimal(rate)
	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return &d, nil
}
