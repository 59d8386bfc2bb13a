package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and mutation against the "users"
// table.
//
// The table carries two unique constraints with different comparison rules:
// an exact-match constraint on the lowercased e-mail column and a
// case/accent-insensitive one on the username column (nondeterministic ICU
// collation at primary strength). These constraints — not the service-layer
// pre-checks — are what resolve concurrent registrations: the losing insert
// observes a unique violation and is mapped to the matching conflict
// sentinel.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one users-table row in [userColumns] order.
func scanUser(row interface{ Scan(...any) error }, user *models.User) error {
	return row.Scan(
		&user.UserID,
		&user.Email,
		&user.UserName,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.FirstName,
		&user.LastName,
		&user.MobileNo,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// uniqueViolation maps a PostgreSQL unique_violation (23505) to the conflict
// sentinel matching the violated constraint, or returns nil for any other
// error.
func uniqueViolation(err error) error {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return nil
	}

	if postgresConstraint(err) == userNameConstraint {
		return ErrUserNameAlreadyExists
	}
	return ErrEmailAlreadyExists
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - unique_violation (23505) on the e-mail constraint → [ErrEmailAlreadyExists].
//   - unique_violation (23505) on the username constraint → [ErrUserNameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Email, user.UserName, user.PasswordHash, user.IsAdmin,
		user.FirstName, user.LastName, user.MobileNo)

	var created models.User
	if err := scanUser(row, &created); err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("unique constraint violated")
			return models.User{}, conflict
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByEmail retrieves the user record whose e-mail exactly matches the
// given value. Callers are expected to normalize the address to lowercase
// before the lookup.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, findUserByEmail, email)
}

// FindUserByUserName retrieves the user record whose username matches the
// given value under the column's case/accent-insensitive collation. The same
// rule backs the unique index, so a hit here is exactly what the constraint
// would reject.
func (r *userRepository) FindUserByUserName(ctx context.Context, userName string) (models.User, error) {
	return r.findUser(ctx, findUserByUserName, userName)
}

// FindUserByID retrieves a user record by its internal identifier.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, userID)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateUser applies a partial update to the user identified by userID and
// returns the updated record. Only non-nil fields of update are written; the
// UPDATE statement is built dynamically with squirrel.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - unique_violation on the e-mail constraint (admin e-mail change) →
//     [ErrEmailAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, update models.AdminUserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	builder := squirrel.Update("users").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(squirrel.Dollar)

	if update.FirstName != nil {
		builder = builder.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		builder = builder.Set("last_name", *update.LastName)
	}
	if update.MobileNo != nil {
		builder = builder.Set("mobile_no", *update.MobileNo)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.IsAdmin != nil {
		builder = builder.Set("is_admin", *update.IsAdmin)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	var updated models.User
	if err := scanUser(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		if conflict := uniqueViolation(err); conflict != nil {
			log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("unique constraint violated")
			return models.User{}, conflict
		}

		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// UpdatePassword overwrites the stored password hash of the user identified
// by userID. Returns [ErrNoUserWasFound] when no row was affected.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserPassword, userID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
