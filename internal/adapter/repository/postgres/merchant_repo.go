package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// MerchantRepository implements usecase.MerchantRepository backed by PostgreSQL.
type MerchantRepository struct {
	pool *pgxpool.Pool
}

// NewMerchantRepository creates a new MerchantRepository.
func NewMerchantRepository(pool *pgxpool.Pool) *MerchantRepository {
	return &MerchantRepository{pool: pool}
}

const merchantColumns = `id, name, email, phone, balance, status, created_at, updated_at`

// Create inserts a new merchant.
func (r *MerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO merchants (id, name, email, phone, balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		merchant.ID,
		merchant.Name,
		merchant.Email,
		merchant.Phone,
		decimalToNumeric(merchant.Balance),
		string(merchant.Status),
		timeToPgTimestamptz(merchant.CreatedAt),
		timeToPgTimestamptz(merchant.UpdatedAt),
	)
	return err
}

// GetByID retrieves a merchant by ID.
func (r *MerchantRepository) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+merchantColumns+`
		FROM merchants
		WHERE id = $1`, id)

	return scanMerchant(row)
}

// GetByIDForUpdate retrieves a merchant with a row lock inside a transaction.
func (r *MerchantRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Merchant, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+merchantColumns+`
		FROM merchants
		WHERE id = $1
		FOR UPDATE`, id)

	return scanMerchant(row)
}

// UpdateBalance sets the merchant's live balance inside a transaction.
func (r *MerchantRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE merchants
		SET balance = $2, updated_at = $3
		WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMerchantNotFound
	}
	return nil
}

// UpdateStatus sets the merchant's lifecycle status.
func (r *MerchantRepository) UpdateStatus(ctx context.Context, id string, status domain.MerchantStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE merchants
		SET status = $2, updated_at = $3
		WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMerchantNotFound
	}
	return nil
}

// List retrieves merchants ordered by creation time, newest first.
func (r *MerchantRepository) List(ctx context.Context, limit, offset int) ([]*domain.Merchant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+merchantColumns+`
		FROM merchants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var merchants []*domain.Merchant
	for rows.Next() {
		merchant, err := scanMerchant(rows)
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, merchant)
	}
	return merchants, rows.Err()
}

func scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	var (
		m         domain.Merchant
		balance   pgtype.Numeric
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &balance, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}

	m.Balance = numericToDecimal(balance)
	m.Status = domain.MerchantStatus(status)
	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}

// decimalToNumeric converts a decimal.Decimal to pgtype.Numeric.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.String())
	return n
}

// numericToDecimal converts a pgtype.Numeric to decimal.Decimal.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}
	return d
}

// timeToPgTimestamptz converts a time.Time to pgtype.Timestamptz.
func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
