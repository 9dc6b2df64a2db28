package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-auth-service/internal/config"
	"github.com/pribylovaa/go-auth-service/internal/models"
	"github.com/pribylovaa/go-auth-service/internal/storage"
	"github.com/pribylovaa/go-auth-service/mocks"
)

func testCfg() config.AuthConfig {
	return config.AuthConfig{
		BcryptCost:    bcrypt.MinCost,
		SessionCookie: "session_id",
	}
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	svc := New(st, testCfg())
	return svc, st, ctrl
}

func mustHashPW(t *testing.T, svc *Service, pw string) string {
	t.Helper()
	h, err := svc.hashPassword(pw)
	require.NoError(t, err)
	return h
}

func TestRegisterUser_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	email := "User@Example.com"
	norm := "user@example.com"
	pw := "pw1"

	// Сначала UserByEmail -> ErrNotFound, потом SaveUser.
	st.EXPECT().UserByEmail(gomock.Any(), norm).Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			require.NotEqual(t, uuid.Nil, u.ID)
			require.Equal(t, norm, u.Email)
			require.True(t, checkPassword(u.PasswordHash, pw))
			require.Nil(t, u.SessionID)
			require.Nil(t, u.ResetToken)
			return nil
		})

	user, err := svc.RegisterUser(ctx, email, pw)
	require.NoError(t, err)
	require.Equal(t, norm, user.Email)
	require.NotEqual(t, uuid.Nil, user.ID)
}

func TestRegisterUser_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "not-an-email", "pw1")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterUser_EmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	_, err := svc.RegisterUser(context.Background(), "u@e.com", "")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestRegisterUser_EmailAlreadyExists_OnLookup(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Если UserByEmail вернул пользователя (err == nil) - считается занятым email.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{ID: uuid.New(), Email: "user@example.com"}, nil)

	_, err := svc.RegisterUser(context.Background(), "user@example.com", "pw1")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterUser_RaceOnSave_MapsToAlreadyRegistered(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	// Конкурент успел создать пользователя между проверкой и записью:
	// уникальный индекс по email превращает гонку в ErrAlreadyExists.
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").Return(nil, storage.ErrNotFound)
	st.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), "user@example.com", "pw1")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterUser_StorageLookupError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, errors.New("db down"))

	_, err := svc.RegisterUser(context.Background(), "user@example.com", "pw1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAlreadyRegistered)
}

func TestValidLogin_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	hash := mustHashPW(t, svc, "pw1")
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: hash}, nil)

	ok, err := svc.ValidLogin(context.Background(), "User@Example.com", "pw1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestValidLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	hash := mustHashPW(t, svc, "pw1")
	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(&models.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: hash}, nil)

	ok, err := svc.ValidLogin(context.Background(), "user@example.com", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidLogin_UnknownEmail_FalseWithoutError(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").Return(nil, storage.ErrNotFound)

	ok, err := svc.ValidLogin(context.Background(), "ghost@example.com", "pw1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidLogin_MalformedEmail_FalseWithoutStoreCall(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ok, err := svc.ValidLogin(context.Background(), "not-an-email", "pw1")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.ValidLogin(context.Background(), "user@example.com", "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidLogin_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByEmail(gomock.Any(), "user@example.com").
		Return(nil, errors.New("db down"))

	_, err := svc.ValidLogin(context.Background(), "user@example.com", "pw1")
	require.Error(t, err)
}

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	h1 := mustHashPW(t, svc, "pw1")
	h2 := mustHashPW(t, svc, "pw1")

	// Случайная соль: одинаковый пароль — разные хэши, оба валидны.
	require.NotEqual(t, h1, h2)
	require.True(t, checkPassword(h1, "pw1"))
	require.True(t, checkPassword(h2, "pw1"))
	require.False(t, checkPassword(h1, "pw2"))
}

func TestCheckPassword_MalformedHash_False(t *testing.T) {
	t.Parallel()

	require.False(t, checkPassword("not-a-bcrypt-hash", "pw1"))
	require.False(t, checkPassword("", "pw1"))
}
