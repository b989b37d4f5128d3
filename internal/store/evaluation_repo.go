package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type evaluationRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func (r *evaluationRepo) Append(ctx context.Context, rec *EvaluationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	missing := rec.Missing
	if missing == nil {
		missing = []string{}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return fmt.Errorf("marshal missing categories: %w", err)
	}

	query, args, err := r.sb.Insert("evaluations").
		Columns("id", "student_id", "program", "term",
			"earned_total", "expected_by_now", "pending_total", "future_locked_total",
			"ratio", "status", "risk", "missing", "created_at").
		Values(rec.ID, rec.StudentID, rec.Program, rec.Term,
			rec.EarnedTotal, rec.ExpectedByNow, rec.PendingTotal, rec.FutureLockedTotal,
			rec.Ratio, rec.Status, rec.Risk, string(missingJSON), rec.CreatedAt.UnixNano()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert evaluation: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepo) ListForStudent(ctx context.Context, studentID string, limit int) ([]EvaluationRecord, error) {
	sel := r.sb.Select("id", "student_id", "program", "term",
		"earned_total", "expected_by_now", "pending_total", "future_locked_total",
		"ratio", "status", "risk", "missing", "created_at").
		From("evaluations").
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		sel = sel.Limit(uint64(limit))
	}
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list evaluations: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var out []EvaluationRecord
	for rows.Next() {
		var (
			rec         EvaluationRecord
			missingJSON string
			created     int64
		)
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Program, &rec.Term,
			&rec.EarnedTotal, &rec.ExpectedByNow, &rec.PendingTotal, &rec.FutureLockedTotal,
			&rec.Ratio, &rec.Status, &rec.Risk, &missingJSON, &created); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if err := json.Unmarshal([]byte(missingJSON), &rec.Missing); err != nil {
			return nil, fmt.Errorf("unmarshal missing categories: %w", err)
		}
		rec.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}
