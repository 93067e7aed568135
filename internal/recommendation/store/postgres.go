package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"docready/internal/domain"
	dErrors "docready/pkg/domain-errors"
)

// PostgresStore persists evaluations in PostgreSQL. Checklist and coverage
// payloads are stored as JSONB so the schema does not chase rule changes.
//
// Expected schema:
//
//	CREATE TABLE evaluations (
//	    id              UUID PRIMARY KEY,
//	    user_id         TEXT NOT NULL,
//	    loan_purpose    TEXT NOT NULL DEFAULT '',
//	    recommendations JSONB NOT NULL,
//	    coverage        JSONB NOT NULL,
//	    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX evaluations_user_id_idx ON evaluations (user_id, created_at);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed evaluation store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, eval *Evaluation) error {
	recs, err := json.Marshal(eval.Recommendations)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "marshal recommendations")
	}
	cov, err := json.Marshal(eval.Coverage)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "marshal coverage")
	}

	query := `
		INSERT INTO evaluations (id, user_id, loan_purpose, recommendations, coverage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			recommendations = EXCLUDED.recommendations,
			coverage = EXCLUDED.coverage
	`
	_, err = s.db.ExecContext(ctx, query,
		eval.ID, eval.UserID, string(eval.LoanPurpose), recs, cov, eval.CreatedAt,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save evaluation")
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	query := `
		SELECT id, user_id, loan_purpose, recommendations, coverage, created_at
		FROM evaluations
		WHERE id = $1
	`
	return scanEvaluation(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*Evaluation, error) {
	query := `
		SELECT id, user_id, loan_purpose, recommendations, coverage, created_at
		FROM evaluations
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list evaluations")
	}
	defer rows.Close()

	var out []*Evaluation
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, eval)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "iterate evaluations")
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (*Evaluation, error) {
	var (
		eval    Evaluation
		purpose string
		recs    []byte
		cov     []byte
	)
	err := row.Scan(&eval.ID, &eval.UserID, &purpose, &recs, &cov, &eval.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "scan evaluation")
	}
	eval.LoanPurpose = domain.LoanPurpose(purpose)
	if err := json.Unmarshal(recs, &eval.Recommendations); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("unmarshal recommendations for %s", eval.ID))
	}
	if err := json.Unmarshal(cov, &eval.Coverage); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("unmarshal coverage for %s", eval.ID))
	}
	return &eval, nil
}
