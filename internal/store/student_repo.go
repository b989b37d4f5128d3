package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// studentRepo implements StudentRepo using squirrel-built SQL.
type studentRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func (r *studentRepo) Create(ctx context.Context, s *Student) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.sb.Insert("students").
		Columns("id", "name", "program", "current_term", "created_at", "updated_at").
		Values(s.ID, s.Name, s.Program, s.CurrentTerm, s.CreatedAt.UnixNano(), s.UpdatedAt.UnixNano()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert student: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	if err := upsertCredits(ctx, tx, r.sb, s.ID, s.Credits); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *studentRepo) Get(ctx context.Context, id string) (*Student, error) {
	query, args, err := r.sb.Select("id", "name", "program", "current_term", "created_at", "updated_at").
		From("students").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select student: %w", err)
	}

	var (
		s                Student
		created, updated int64
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.Name, &s.Program, &s.CurrentTerm, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrStudentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query student: %w", err)
	}
	s.CreatedAt = time.Unix(0, created).UTC()
	s.UpdatedAt = time.Unix(0, updated).UTC()

	credits, err := r.credits(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Credits = credits
	return &s, nil
}

func (r *studentRepo) credits(ctx context.Context, id string) (map[string]int, error) {
	query, args, err := r.sb.Select("category", "credits").
		From("student_credits").
		Where(sq.Eq{"student_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select credits: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query credits: %w", err)
	}
	defer rows.Close()

	credits := make(map[string]int)
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan credits: %w", err)
		}
		credits[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return credits, nil
}

func (r *studentRepo) List(ctx context.Context) ([]Student, error) {
	query, args, err := r.sb.Select("id", "name", "program", "current_term", "created_at", "updated_at").
		From("students").
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list students: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var (
			s                Student
			created, updated int64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Program, &s.CurrentTerm, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		s.CreatedAt = time.Unix(0, created).UTC()
		s.UpdatedAt = time.Unix(0, updated).UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func (r *studentRepo) SetCredits(ctx context.Context, id string, credits map[string]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := touch(ctx, tx, r.sb, id, nil); err != nil {
		return err
	}
	if err := upsertCredits(ctx, tx, r.sb, id, credits); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *studentRepo) SetTerm(ctx context.Context, id string, term int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := touch(ctx, tx, r.sb, id, map[string]any{"current_term": term}); err != nil {
		return err
	}
	return tx.Commit()
}

// touch bumps updated_at (plus any extra columns) and reports
// ErrStudentNotFound when no row matched.
func touch(ctx context.Context, tx *sql.Tx, sb sq.StatementBuilderType, id string, set map[string]any) error {
	upd := sb.Update("students").
		Set("updated_at", time.Now().UTC().UnixNano()).
		Where(sq.Eq{"id": id})
	if len(set) > 0 {
		upd = upd.SetMap(set)
	}
	query, args, err := upd.ToSql()
	if err != nil {
		return fmt.Errorf("build update student: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrStudentNotFound, id)
	}
	return nil
}

func upsertCredits(ctx context.Context, tx *sql.Tx, sb sq.StatementBuilderType, id string, credits map[string]int) error {
	if len(credits) == 0 {
		return nil
	}

	// Sorted for deterministic statement order.
	categories := make([]string, 0, len(credits))
	for c := range credits {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	ins := sb.Insert("student_credits").Columns("student_id", "category", "credits")
	for _, c := range categories {
		ins = ins.Values(id, c, credits[c])
	}
	query, args, err := ins.
		Suffix("ON CONFLICT(student_id, category) DO UPDATE SET credits = excluded.credits").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert credits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert credits: %w", err)
	}
	return nil
}
