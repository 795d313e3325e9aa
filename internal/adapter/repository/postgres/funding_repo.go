package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/metzakaria/vendicore/internal/domain"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// FundingRepository implements usecase.FundingRepository backed by PostgreSQL.
type FundingRepository struct {
	pool *pgxpool.Pool
}

// NewFundingRepository creates a new FundingRepository.
func NewFundingRepository(pool *pgxpool.Pool) *FundingRepository {
	return &FundingRepository{pool: pool}
}

const fundingColumns = `reference, merchant_id, amount, balance_before, balance_after, description, source, created_at, updated_at`

// Create inserts a new funding entry inside a transaction.
func (r *FundingRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.FundingEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO funding_entries (reference, merchant_id, amount, balance_before, balance_after, description, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.Reference,
		entry.MerchantID,
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.BalanceBefore),
		decimalToNumeric(entry.BalanceAfter),
		entry.Description,
		entry.Source,
		timeToPgTimestamptz(entry.CreatedAt),
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	return err
}

// GetByReference retrieves a funding entry by its reference.
func (r *FundingRepository) GetByReference(ctx context.Context, reference string) (*domain.FundingEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+fundingColumns+`
		FROM funding_entries
		WHERE reference = $1`, reference)

	return scanFundingEntry(row)
}

// GetByReferenceForUpdate retrieves a funding entry with a row lock inside a transaction.
func (r *FundingRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.FundingEntry, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+fundingColumns+`
		FROM funding_entries
		WHERE reference = $1
		FOR UPDATE`, reference)

	return scanFundingEntry(row)
}

// Update rewrites the mutable fields of an entry inside a transaction.
// Reference, merchant and balance_before are immutable once written.
func (r *FundingRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.FundingEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE funding_entries
		SET amount = $2, balance_after = $3, description = $4, source = $5, updated_at = $6
		WHERE reference = $1`,
		entry.Reference,
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.BalanceAfter),
		entry.Description,
		entry.Source,
		timeToPgTimestamptz(entry.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFundingNotFound
	}
	return nil
}

// ListByMerchant retrieves funding entries for a merchant, newest first.
func (r *FundingRepository) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.FundingEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+fundingColumns+`
		FROM funding_entries
		WHERE merchant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, merchantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.FundingEntry
	for rows.Next() {
		entry, err := scanFundingEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SumAmountsByMerchant totals all funding amounts recorded for a merchant.
func (r *FundingRepository) SumAmountsByMerchant(ctx context.Context, merchantID string) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM funding_entries
		WHERE merchant_id = $1`, merchantID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return numericToDecimal(total), nil
}

func scanFundingEntry(row pgx.Row) (*domain.FundingEntry, error) {
	var (
		e             domain.FundingEntry
		amount        pgtype.Numeric
		balanceBefore pgtype.Numeric
		balanceAfter  pgtype.Numeric
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(&e.Reference, &e.MerchantID, &amount, &balanceBefore, &balanceAfter, &e.Description, &e.Source, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFundingNotFound
		}
		return nil, err
	}

	e.Amount = numericToDecimal(amount)
	e.BalanceBefore = numericToDecimal(balanceBefore)
	e.BalanceAfter = numericToDecimal(balanceAfter)
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}
