package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	sqlite3driver "github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/attribute"

	"userapp/internal/adapter/database/sqlite"
	"userapp/internal/core/domain"
	"userapp/internal/core/port"
	"userapp/pkg/tracing"
)

const userColumns = "id, uuid, name, email, phone, created_at, updated_at, deleted_at"

type UserRepository struct {
	db *sqlite.DB
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) List(ctx context.Context, filter port.ListFilter) ([]domain.User, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.user.List", []attribute.KeyValue{
		attribute.String("db.table", "users"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("user.search", filter.Search),
	})

	defer span.End()

	query := applyListFilter(ur.db.QueryBuilder.Select(strings.Split(userColumns, ", ")...).
		From("users").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("created_at", "id"), filter)

	stmt, args, err := query.ToSql()

	if err != nil {
		return []domain.User{}, err
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error listing users", "error", err)
		return []domain.User{}, err
	}

	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		user, err := scanUser(rows)

		if err != nil {
			return []domain.User{}, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return []domain.User{}, err
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(users)))

	return users, nil
}

// applyListFilter narrows a listing. SQLite's LIKE is already ASCII
// case-insensitive but needs an explicit ESCAPE clause for wildcards in the
// search term to match literally.
func applyListFilter(query sq.SelectBuilder, filter port.ListFilter) sq.SelectBuilder {
	if filter.Search != "" {
		query = query.Where(sq.Expr("name LIKE ? ESCAPE '\\'", "%"+escapeLikePattern(filter.Search)+"%"))
	}

	if filter.From != nil {
		query = query.Where(sq.GtOrEq{"created_at": *filter.From})
	}

	if filter.To != nil {
		query = query.Where(sq.LtOrEq{"created_at": *filter.To})
	}

	return query
}

func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (*domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"phone": phone})
}

// getBy matches soft-deleted rows too: direct lookups stay addressable after
// deletion and uniqueness is checked against every row.
func (ur *UserRepository) getBy(ctx context.Context, cond sq.Eq) (*domain.User, error) {
	query := ur.db.QueryBuilder.Select(strings.Split(userColumns, ", ")...).
		From("users").
		Where(cond).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	row := ur.db.QueryRowContext(ctx, stmt, args...)

	user, err := scanUser(row)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		slog.Error("Error getting user", "error", err)
		return nil, err
	}

	return &user, nil
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.user.Create", []attribute.KeyValue{
		attribute.String("db.table", "users"),
		attribute.String("db.operation", "INSERT"),
	})

	defer span.End()

	uid := user.UUID.String()

	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "name", "email", "phone", "created_at", "updated_at", "deleted_at").
		Values(uid, user.Name, user.Email, user.Phone, user.CreatedAt, user.UpdatedAt, nil)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error creating user", "error", err)
		return domain.User{}, translateUniqueViolation(err)
	}

	saved, err := ur.GetByUUID(ctx, uid)

	if err != nil {
		return domain.User{}, err
	}

	return *saved, nil
}

func (ur *UserRepository) UpdateByUUID(ctx context.Context, uid string, changes domain.UserChanges) (domain.User, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.user.UpdateByUUID", []attribute.KeyValue{
		attribute.String("db.table", "users"),
		attribute.String("db.operation", "UPDATE"),
	})

	defer span.End()

	set := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if changes.Name != nil {
		set["name"] = *changes.Name
	}

	if changes.Email != nil {
		set["email"] = *changes.Email
	}

	if changes.Phone != nil {
		set["phone"] = *changes.Phone
	}

	query := ur.db.QueryBuilder.Update("users").
		SetMap(set).
		Where(sq.Eq{"uuid": uid})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	// Apply and read back inside one transaction so a concurrent read never
	// observes a half-applied update.
	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.User{}, err
	}

	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error updating user", "error", err)
		return domain.User{}, translateUniqueViolation(err)
	}

	affected, _ := result.RowsAffected()

	if affected == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	selectStmt, selectArgs, err := ur.db.QueryBuilder.Select(strings.Split(userColumns, ", ")...).
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	user, err := scanUser(tx.QueryRowContext(ctx, selectStmt, selectArgs...))

	if err != nil {
		return domain.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) SoftDeleteByUUID(ctx context.Context, uid string) error {
	query := ur.db.QueryBuilder.Update("users").
		Set("deleted_at", time.Now()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"uuid": uid})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return err
	}

	affected, _ := result.RowsAffected()

	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	var uuidStr string

	err := row.Scan(
		&user.ID,
		&uuidStr,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	user.UUID, err = uuid.Parse(uuidStr)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// translateUniqueViolation maps the storage-level unique constraint, the
// authoritative guard against duplicate email/phone, onto the conflict error
// the HTTP layer reports.
func translateUniqueViolation(err error) error {
	var sqliteErr sqlite3driver.Error

	if !errors.As(err, &sqliteErr) {
		return err
	}

	if sqliteErr.ExtendedCode != sqlite3driver.ErrConstraintUnique {
		return err
	}

	message := sqliteErr.Error()

	if strings.Contains(message, "users.email") {
		return domain.NewEmailConflict()
	}

	if strings.Contains(message, "users.phone") {
		return domain.NewPhoneConflict()
	}

	return err
}
