package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists audit events in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const schema = `
	CREATE TABLE IF NOT EXISTS screening_audit (
		id         UUID PRIMARY KEY,
		timestamp  TIMESTAMPTZ NOT NULL,
		case_id    UUID NOT NULL,
		subject    TEXT NOT NULL,
		action     TEXT NOT NULL,
		decision   TEXT NOT NULL,
		score      INT NOT NULL,
		reason     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS screening_audit_subject_idx
		ON screening_audit (subject, timestamp DESC);
`

// Init creates the audit table if it does not exist.
func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init audit schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO screening_audit (id, timestamp, case_id, subject, action, decision, score, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query,
		uuid.New(),
		event.Timestamp,
		event.CaseID,
		event.Subject,
		event.Action,
		event.Decision,
		event.Score,
		event.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBySubject(ctx context.Context, subject string) ([]Event, error) {
	query := `
		SELECT timestamp, case_id, subject, action, decision, score, reason
		FROM screening_audit
		WHERE subject = $1
		ORDER BY timestamp DESC
	`
	rows, err := s.pool.Query(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(
			&event.Timestamp,
			&event.CaseID,
			&event.Subject,
			&event.Action,
			&event.Decision,
			&event.Score,
			&event.Reason,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
