package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/xyz-asif/goalpath/internal/pkg/datetime"
)

const usersTable = "users"

var userColumns = []string{
	"id", "username", "email", "gender", "image", "image_name",
	"password", "mobile", "followers", "date_of_birth", "description",
}

type userRow struct {
	ID          int64      `db:"id"`
	Username    string     `db:"username"`
	Email       string     `db:"email"`
	Gender      string     `db:"gender"`
	Image       *string    `db:"image"`
	ImageName   *string    `db:"image_name"`
	Password    string     `db:"password"`
	Mobile      string     `db:"mobile"`
	Followers   int        `db:"followers"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Description string     `db:"description"`
}

func (r userRow) toUser() User {
	return User{
		ID:          r.ID,
		Username:    r.Username,
		Email:       r.Email,
		Gender:      r.Gender,
		Image:       r.Image,
		ImageName:   r.ImageName,
		Password:    r.Password,
		Mobile:      r.Mobile,
		Followers:   r.Followers,
		DateOfBirth: datetime.FromTime(r.DateOfBirth),
		Description: r.Description,
	}
}

// PostgresRepository stores users in the users table.
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

func (r *PostgresRepository) findOne(ctx context.Context, query sq.SelectBuilder) (*User, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, sqlStr, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	user := row.toUser()
	return &user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, r.qb.Select(userColumns...).From(usersTable).Where(sq.Eq{"id": id}))
}

// FindByUsername matches the username exactly and returns the oldest match.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, r.qb.Select(userColumns...).From(usersTable).
		Where(sq.Eq{"username": username}).
		OrderBy("id").
		Limit(1))
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]User, error) {
	query, args, err := r.qb.Select(userColumns...).From(usersTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

// Save inserts new users and overwrites profile and image fields of existing
// ones. The follower count is owned by AdjustFollowers and is read back.
func (r *PostgresRepository) Save(ctx context.Context, user *User) error {
	if user.ID == 0 {
		return r.insert(ctx, user)
	}

	query, args, err := r.qb.Update(usersTable).SetMap(map[string]interface{}{
		"username":      user.Username,
		"email":         user.Email,
		"gender":        user.Gender,
		"image":         user.Image,
		"image_name":    user.ImageName,
		"password":      user.Password,
		"mobile":        user.Mobile,
		"date_of_birth": datetime.ToTime(user.DateOfBirth),
		"description":   user.Description,
	}).Where(sq.Eq{"id": user.ID}).Suffix("RETURNING followers").ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&user.Followers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func (r *PostgresRepository) insert(ctx context.Context, user *User) error {
	query, args, err := r.qb.Insert(usersTable).
		Columns(userColumns[1:]...).
		Values(
			user.Username, user.Email, user.Gender, user.Image, user.ImageName,
			user.Password, user.Mobile, user.Followers, datetime.ToTime(user.DateOfBirth), user.Description,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRowxContext(ctx, query, args...).Scan(&user.ID)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	query, args, err := r.qb.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *PostgresRepository) AdjustFollowers(ctx context.Context, id int64, delta int) (*User, error) {
	query, args, err := r.qb.Update(usersTable).
		Set("followers", sq.Expr("GREATEST(followers + ?, 0)", delta)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row userRow
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	user := row.toUser()
	return &user, nil
}
