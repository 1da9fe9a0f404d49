package goals

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/xyz-asif/goalpath/internal/pkg/datetime"
)

const goalsTable = "goals"

var goalColumns = []string{"id", "user_id", "title", "description", "progress", "target_date", "created_at"}

type goalRow struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Progress    int        `db:"progress"`
	TargetDate  *time.Time `db:"target_date"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r goalRow) toGoal() Goal {
	return Goal{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Progress:    r.Progress,
		TargetDate:  datetime.FromTime(r.TargetDate),
		CreatedAt:   r.CreatedAt,
	}
}

// PostgresRepository stores goals in the goals table.
type PostgresRepository struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Goal, error) {
	query, args, err := r.qb.Select(goalColumns...).From(goalsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var row goalRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	goal := row.toGoal()
	return &goal, nil
}

func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) ([]Goal, error) {
	return r.list(ctx, sq.Eq{"user_id": userID})
}

func (r *PostgresRepository) FindByUserAndCompleted(ctx context.Context, userID string, completed bool) ([]Goal, error) {
	var progress sq.Sqlizer = sq.Lt{"progress": CompletionThreshold}
	if completed {
		progress = sq.GtOrEq{"progress": CompletionThreshold}
	}
	return r.list(ctx, sq.And{sq.Eq{"user_id": userID}, progress})
}

func (r *PostgresRepository) list(ctx context.Context, where sq.Sqlizer) ([]Goal, error) {
	query, args, err := r.qb.Select(goalColumns...).From(goalsTable).Where(where).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []goalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	goals := make([]Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, row.toGoal())
	}
	return goals, nil
}

func (r *PostgresRepository) Save(ctx context.Context, goal *Goal) error {
	if goal.ID == 0 {
		return r.insert(ctx, goal)
	}

	query, args, err := r.qb.Update(goalsTable).SetMap(map[string]interface{}{
		"user_id":     goal.UserID,
		"title":       goal.Title,
		"description": goal.Description,
		"progress":    goal.Progress,
		"target_date": datetime.ToTime(goal.TargetDate),
		"created_at":  goal.CreatedAt,
	}).Where(sq.Eq{"id": goal.ID}).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *PostgresRepository) insert(ctx context.Context, goal *Goal) error {
	query, args, err := r.qb.Insert(goalsTable).
		Columns("user_id", "title", "description", "progress", "target_date", "created_at").
		Values(goal.UserID, goal.Title, goal.Description, goal.Progress, datetime.ToTime(goal.TargetDate), goal.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRowxContext(ctx, query, args...).Scan(&goal.ID)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := r.qb.Delete(goalsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
