package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/mock"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// newTestAuthSvc — хелпер для создания authService с моками
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)

	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-blog-api-test",
		TokenDuration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	svc := NewAuthService(mockUsers, cfg, logger.Nop()).(*authService)

	return svc, mockUsers
}

func validRegistration() models.User {
	return models.User{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "John.Doe@Example.com",
		UserName:  "johnny",
		MobileNo:  "+10000000001",
		Password:  "longenough",
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := validRegistration()

	gomock.InOrder(
		mockUsers.EXPECT().FindUserByEmail(ctx, "john.doe@example.com").
			Return(models.User{}, store.ErrNoUserWasFound),
		mockUsers.EXPECT().FindUserByUserName(ctx, "johnny").
			Return(models.User{}, store.ErrNoUserWasFound),
		// Проверяем что пароль захеширован и не уходит в хранилище открытым текстом
		mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Empty(t, u.Password, "plaintext password must be cleared before storage")
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longenough")))
				assert.Equal(t, "john.doe@example.com", u.Email)
				u.UserID = 42
				return u, nil
			},
		),
	)

	registered, err := svc.Register(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.UserID)
	assert.Equal(t, "johnny", registered.UserName)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := validRegistration()
	user.MobileNo = "   "

	_, err := svc.Register(ctx, user)
	assert.ErrorIs(t, err, ErrAllFieldsRequired)
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	for _, email := range []string{"not-an-email", "@nodomain", "nolocal@"} {
		user := validRegistration()
		user.Email = email

		_, err := svc.Register(ctx, user)
		assert.ErrorIs(t, err, ErrInvalidEmailFormat, "email %q", email)
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := validRegistration()
	user.Password = "short"

	_, err := svc.Register(ctx, user)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := validRegistration()

	mockUsers.EXPECT().FindUserByEmail(ctx, "john.doe@example.com").
		Return(models.User{UserID: 1}, nil)

	_, err := svc.Register(ctx, user)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Register_UserNameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := validRegistration()

	gomock.InOrder(
		mockUsers.EXPECT().FindUserByEmail(ctx, "john.doe@example.com").
			Return(models.User{}, store.ErrNoUserWasFound),
		mockUsers.EXPECT().FindUserByUserName(ctx, "johnny").
			Return(models.User{UserID: 2}, nil),
	)

	_, err := svc.Register(ctx, user)
	assert.ErrorIs(t, err, store.ErrUserNameAlreadyExists)
}

func TestAuthService_Register_ConstraintRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := validRegistration()

	// Предварительная проверка прошла, но вставка проиграла гонку
	gomock.InOrder(
		mockUsers.EXPECT().FindUserByEmail(ctx, gomock.Any()).
			Return(models.User{}, store.ErrNoUserWasFound),
		mockUsers.EXPECT().FindUserByUserName(ctx, gomock.Any()).
			Return(models.User{}, store.ErrNoUserWasFound),
		mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).
			Return(models.User{}, store.ErrUserNameAlreadyExists),
	)

	_, err := svc.Register(ctx, user)
	assert.ErrorIs(t, err, store.ErrUserNameAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{UserID: 7, Email: "john.doe@example.com", PasswordHash: hashFor(t, "longenough")}

	mockUsers.EXPECT().FindUserByEmail(ctx, "john.doe@example.com").Return(stored, nil)

	found, err := svc.Login(ctx, "John.Doe@Example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, int64(7), found.UserID)
}

func TestAuthService_Login_ByUserName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{UserID: 7, UserName: "Johnny", PasswordHash: hashFor(t, "longenough")}

	// Идентификатор без "@" уходит в поиск по имени как есть
	mockUsers.EXPECT().FindUserByUserName(ctx, "johnny").Return(stored, nil)

	found, err := svc.Login(ctx, "johnny", "longenough")
	require.NoError(t, err)
	assert.Equal(t, int64(7), found.UserID)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByUserName(ctx, "ghost").
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(ctx, "ghost", "whatever123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{UserID: 7, UserName: "johnny", PasswordHash: hashFor(t, "longenough")}

	mockUsers.EXPECT().FindUserByUserName(ctx, "johnny").Return(stored, nil)

	_, err := svc.Login(ctx, "johnny", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByUserName(ctx, "johnny").
		Return(models.User{}, errors.New("connection refused"))

	_, err := svc.Login(ctx, "johnny", "longenough")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 7, Email: "john.doe@example.com", IsAdmin: true}

	token, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, "john.doe@example.com", parsed.Email)
	assert.True(t, parsed.IsAdmin)
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 7})
	require.NoError(t, err)

	svc.tokenSignKey = "another-sign-key"

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	svc.tokenDuration = -time.Hour

	token, err := svc.CreateToken(ctx, models.User{UserID: 7})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.ParseToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

// ── Availability checks ──────────────────────────────────────────────────────

func TestAuthService_CheckEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByEmail(ctx, "free@example.com").
		Return(models.User{}, store.ErrNoUserWasFound)
	mockUsers.EXPECT().FindUserByEmail(ctx, "taken@example.com").
		Return(models.User{UserID: 1}, nil)

	email, available, err := svc.CheckEmail(ctx, "  Free@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "free@example.com", email)
	assert.True(t, available)

	_, available, err = svc.CheckEmail(ctx, "taken@example.com")
	require.NoError(t, err)
	assert.False(t, available)

	_, _, err = svc.CheckEmail(ctx, "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmailFormat)
}

func TestAuthService_CheckUserName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByUserName(ctx, "free").
		Return(models.User{}, store.ErrNoUserWasFound)
	mockUsers.EXPECT().FindUserByUserName(ctx, "Taken").
		Return(models.User{UserID: 1}, nil)

	name, available, err := svc.CheckUserName(ctx, " free ")
	require.NoError(t, err)
	assert.Equal(t, "free", name)
	assert.True(t, available)

	_, available, err = svc.CheckUserName(ctx, "Taken")
	require.NoError(t, err)
	assert.False(t, available)

	_, _, err = svc.CheckUserName(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── Profile updates ──────────────────────────────────────────────────────────

func TestAuthService_UpdateProfile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	first := " Jane "
	update := models.UserUpdate{FirstName: &first}

	mockUsers.EXPECT().UpdateUser(ctx, int64(7), gomock.Any()).DoAndReturn(
		func(_ context.Context, userID int64, u models.AdminUserUpdate) (models.User, error) {
			require.NotNil(t, u.FirstName)
			assert.Equal(t, "Jane", *u.FirstName)
			assert.Nil(t, u.Email, "profile update must not touch the email")
			assert.Nil(t, u.IsAdmin, "profile update must not touch the privilege flag")
			return models.User{UserID: userID, FirstName: "Jane"}, nil
		},
	)

	updated, err := svc.UpdateProfile(ctx, 7, update)
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.FirstName)
}

func TestAuthService_UpdateProfile_NoFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, 7, models.UserUpdate{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().UpdatePassword(ctx, int64(7), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, hash string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("fresh-password")))
			return nil
		},
	)

	require.NoError(t, svc.ResetPassword(ctx, 7, "fresh-password"))

	err := svc.ResetPassword(ctx, 7, "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_AdminUpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	email := " New.Mail@Example.com "
	isAdmin := true
	update := models.AdminUserUpdate{UserID: 9, Email: &email, IsAdmin: &isAdmin}

	mockUsers.EXPECT().UpdateUser(ctx, int64(9), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, u models.AdminUserUpdate) (models.User, error) {
			require.NotNil(t, u.Email)
			assert.Equal(t, "new.mail@example.com", *u.Email)
			return models.User{UserID: 9, Email: *u.Email, IsAdmin: true}, nil
		},
	)

	updated, err := svc.AdminUpdateUser(ctx, update)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
}

func TestAuthService_AdminUpdateUser_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	email := "taken@example.com"
	update := models.AdminUserUpdate{UserID: 9, Email: &email}

	mockUsers.EXPECT().UpdateUser(ctx, int64(9), gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.AdminUpdateUser(ctx, update)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_AdminUpdateUser_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.AdminUpdateUser(ctx, models.AdminUserUpdate{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.AdminUpdateUser(ctx, models.AdminUserUpdate{UserID: 9})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}
