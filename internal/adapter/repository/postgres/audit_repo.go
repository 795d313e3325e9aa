package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metzakaria/vendicore/internal/domain"
)

// AuditRepository implements usecase.AuditRepository backed by PostgreSQL.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Create inserts an audit log record.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	before, err := marshalState(log.BeforeState)
	if err != nil {
		return err
	}
	after, err := marshalState(log.AfterState)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id, request_id, before_state, after_state, status, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		log.ID,
		log.UserID,
		log.Action,
		log.ResourceType,
		log.ResourceID,
		log.RequestID,
		before,
		after,
		log.Status,
		log.ErrorMessage,
		timeToPgTimestamptz(log.CreatedAt),
	)
	return err
}

// GetByResourceID retrieves the audit trail of a resource, newest first.
func (r *AuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, action, resource_type, resource_id, request_id, before_state, after_state, status, error_message, created_at
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at DESC`, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog
	for rows.Next() {
		var (
			l         domain.AuditLog
			before    []byte
			after     []byte
			createdAt pgtype.Timestamptz
		)
		err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.ResourceType, &l.ResourceID, &l.RequestID, &before, &after, &l.Status, &l.ErrorMessage, &createdAt)
		if err != nil {
			return nil, err
		}

		if l.BeforeState, err = unmarshalState(before); err != nil {
			return nil, err
		}
		if l.AfterState, err = unmarshalState(after); err != nil {
			return nil, err
		}
		l.CreatedAt = createdAt.Time

		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

func marshalState(state domain.JSON) ([]byte, error) {
	if state == nil {
		return nil, nil
	}
	return json.Marshal(state)
}

func unmarshalState(data []byte) (domain.JSON, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var state domain.JSON
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return state, nil
}
