package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/mock"
	"github.com/avdeevsm/go-vault-core/internal/utils"
	"github.com/avdeevsm/go-vault-core/models"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()

	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, config.App{
		PasswordHashKey: "hash-key",
		TokenSignKey:    "sign-key",
		TokenIssuer:     "vault-core",
		TokenDuration:   time.Hour,
	}, logger.Nop())

	return svc, mockRepo
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)

	mockRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			// the plaintext password never reaches the repository
			assert.NotEqual(t, "plain-password", user.AuthHash)
			assert.Equal(t, utils.HashString("plain-password", "hash-key"), user.AuthHash)
			user.UserID = 42
			return user, nil
		})

	registered, err := svc.RegisterUser(context.Background(), models.User{
		Login:    "user@example.com",
		AuthHash: "plain-password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.UserID)
}

func TestAuthService_RegisterUser_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "user@example.com"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{AuthHash: "password"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	stored := models.User{
		UserID:   42,
		Login:    "user@example.com",
		AuthHash: utils.HashString("plain-password", "hash-key"),
	}

	mockRepo.EXPECT().FindUserByLogin(gomock.Any(), stored.Login).Return(stored, nil)

	user, err := svc.Login(context.Background(), models.User{
		Login:    stored.Login,
		AuthHash: "plain-password",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	stored := models.User{
		UserID:   42,
		Login:    "user@example.com",
		AuthHash: utils.HashString("plain-password", "hash-key"),
	}

	mockRepo.EXPECT().FindUserByLogin(gomock.Any(), stored.Login).Return(stored, nil)

	_, err := svc.Login(context.Background(), models.User{
		Login:    stored.Login,
		AuthHash: "not-the-password",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	user := models.User{UserID: 42, Login: "user@example.com"}

	token, err := svc.CreateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
