package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, profile mutation,
// and the JWT token lifecycle, using a UserRepository for persistence and
// bcrypt for password hashing.
type authService struct {
	// users is the data-access layer used to create and look up accounts.
	users store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// Read-only after construction; there is no runtime rotation.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// Zero disables the expiry claim.
	tokenDuration time.Duration

	// bcryptCost is the work factor applied when hashing passwords.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:         users,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		bcryptCost:    cfg.BcryptCost,
		logger:        logger,
	}
}

// normalizeEmail trims surrounding whitespace and lowercases the address so
// storage and every later lookup are exact-match.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail reports whether the address contains an "@"-delimited,
// non-empty local part and domain.
func validEmail(email string) bool {
	local, domain, found := strings.Cut(email, "@")
	return found && local != "" && domain != ""
}

// Register creates a new user account.
//
// Validation: every identity field must be non-empty, the e-mail must carry
// an "@"-delimited domain, and the password must be at least
// [MinPasswordLength] characters.
//
// Uniqueness is enforced in two cooperating layers. Register first runs an
// advisory pre-check against both identity fields so the common case gets a
// friendly conflict without waiting for an insert. The pre-check is not the
// guarantee: two concurrent registrations can both pass it, and the storage
// unique constraints decide the winner — the losing insert comes back as the
// same conflict sentinel.
//
// The password is hashed with bcrypt before storage; the plaintext is
// discarded immediately after hashing.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrAllFieldsRequired / ErrInvalidEmailFormat / ErrPasswordTooShort
//     on validation failure.
//   - store.ErrEmailAlreadyExists / store.ErrUserNameAlreadyExists on
//     conflict, from either layer.
func (a *authService) Register(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Email = normalizeEmail(user.Email)
	user.UserName = strings.TrimSpace(user.UserName)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	user.MobileNo = strings.TrimSpace(user.MobileNo)

	if user.FirstName == "" || user.LastName == "" || user.Email == "" ||
		user.UserName == "" || user.MobileNo == "" || user.Password == "" {
		log.Error().Str("userName", user.UserName).Msg("registration with missing fields")
		return models.User{}, ErrAllFieldsRequired
	}
	if !validEmail(user.Email) {
		return models.User{}, ErrInvalidEmailFormat
	}
	if len(user.Password) < MinPasswordLength {
		return models.User{}, ErrPasswordTooShort
	}

	// Advisory uniqueness pre-check; the DB constraints are the real guard.
	if _, err := a.users.FindUserByEmail(ctx, user.Email); err == nil {
		return models.User{}, store.ErrEmailAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("email pre-check failed: %w", err)
	}
	if _, err := a.users.FindUserByUserName(ctx, user.UserName); err == nil {
		return models.User{}, store.ErrUserNameAlreadyExists
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("username pre-check failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""

	registered, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("userName", user.UserName).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registered, nil
}

// Login authenticates an existing user by e-mail or username.
//
// An identifier containing "@" is treated as an e-mail address and looked up
// exact-match after lowercasing; anything else is treated as a username and
// looked up under the store's case/accent-insensitive collation, so a user
// registered as "Bob" can log in as "bob".
//
// An unknown identifier and a wrong password both produce
// ErrInvalidCredentials with no distinguishing detail.
func (a *authService) Login(ctx context.Context, identifier, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	var found models.User
	var err error
	if strings.Contains(identifier, "@") {
		found, err = a.users.FindUserByEmail(ctx, strings.ToLower(identifier))
	} else {
		found, err = a.users.FindUserByUserName(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Msg("user lookup failed during login")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return found, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, embeds the user's e-mail and
// privilege flag as of this moment, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation
// fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the issuer claim, and expiry. Failures are classified into the service
// sentinels so callers never inspect low-level JWT errors:
//   - elapsed expiry claim → ErrTokenExpired
//   - signature mismatch → ErrTokenSignatureInvalid
//   - not parseable as a token → ErrTokenMalformed
//   - anything else → ErrTokenInvalid
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return models.Token{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return models.Token{}, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return models.Token{}, ErrTokenMalformed
		default:
			return models.Token{}, ErrTokenInvalid
		}
	}

	return token, nil
}

// CheckEmail reports whether the given e-mail address is still available.
// The returned string is the normalized form the check was performed on.
func (a *authService) CheckEmail(ctx context.Context, email string) (string, bool, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return "", false, ErrInvalidEmailFormat
	}

	_, err := a.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return email, false, nil
	case errors.Is(err, store.ErrNoUserWasFound):
		return email, true, nil
	default:
		return "", false, fmt.Errorf("email availability check failed: %w", err)
	}
}

// CheckUserName reports whether the given username is still available under
// the case/accent-insensitive comparison rule. The returned string is the
// trimmed candidate the check was performed on.
func (a *authService) CheckUserName(ctx context.Context, userName string) (string, bool, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return "", false, ErrInvalidDataProvided
	}

	_, err := a.users.FindUserByUserName(ctx, userName)
	switch {
	case err == nil:
		return userName, false, nil
	case errors.Is(err, store.ErrNoUserWasFound):
		return userName, true, nil
	default:
		return "", false, fmt.Errorf("username availability check failed: %w", err)
	}
}

// GetUser retrieves a user record by its internal identifier.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	found, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return found, nil
}

// UpdateProfile applies a partial profile update to the caller's own
// account. Only first name, last name, and phone may be changed here;
// non-nil fields are trimmed before storage.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	if update.Empty() {
		return models.User{}, ErrNoFieldsToUpdate
	}

	adminUpdate := models.AdminUserUpdate{
		UserID:    userID,
		FirstName: trimmed(update.FirstName),
		LastName:  trimmed(update.LastName),
		MobileNo:  trimmed(update.MobileNo),
	}

	updated, err := a.users.UpdateUser(ctx, userID, adminUpdate)
	if err != nil {
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updated, nil
}

// ResetPassword overwrites the stored password hash of the given user with
// the bcrypt hash of newPassword.
//
// The caller's identity comes from the verified token context; the current
// password is not re-checked before the overwrite. That matches the behavior
// of the system this service reimplements and is recorded as a known
// weakness rather than silently changed.
func (a *authService) ResetPassword(ctx context.Context, userID int64, newPassword string) error {
	log := logger.FromContext(ctx)

	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// AdminUpdateUser applies an administrative update to an arbitrary account.
// In addition to the profile fields it may change the e-mail address (which
// can collide with another account and surface a conflict) and the privilege
// flag. Privilege changes affect only tokens issued afterwards.
func (a *authService) AdminUpdateUser(ctx context.Context, update models.AdminUserUpdate) (models.User, error) {
	if update.UserID == 0 {
		return models.User{}, ErrInvalidDataProvided
	}
	if update.Empty() {
		return models.User{}, ErrNoFieldsToUpdate
	}

	update.FirstName = trimmed(update.FirstName)
	update.LastName = trimmed(update.LastName)
	update.MobileNo = trimmed(update.MobileNo)
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if !validEmail(email) {
			return models.User{}, ErrInvalidEmailFormat
		}
		update.Email = &email
	}

	updated, err := a.users.UpdateUser(ctx, update.UserID, update)
	if err != nil {
		return models.User{}, fmt.Errorf("admin user update failed: %w", err)
	}

	return updated, nil
}

// trimmed returns a pointer to the whitespace-trimmed copy of *s, or nil
// when s is nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
