package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/alisson/payable/internal/auth"
)

const testSecret = "test-secret"

func newService(repo *auth.MockRepository) *auth.Service {
	return auth.NewService(repo, testSecret, time.Hour)
}

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		username  string
		password  string
		setupMock func(m *auth.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			username: "alice",
			password: "sup3rsecret",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().UsernameExists(gomock.Any(), "alice").Return(false, nil)
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user *auth.User) error {
						// Never store the raw password.
						assert.NotEqual(t, "sup3rsecret", user.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword(
							[]byte(user.PasswordHash), []byte("sup3rsecret")))
						return nil
					})
			},
		},
		{
			name:     "UsernameTaken",
			username: "alice",
			password: "sup3rsecret",
			setupMock: func(m *auth.MockRepository) {
				m.EXPECT().UsernameExists(gomock.Any(), "alice").Return(true, nil)
			},
			wantErr: auth.ErrUsernameTaken,
		},
		{
			name:     "ShortPassword",
			username: "alice",
			password: "abc",
		},
		{
			name:     "EmptyUsername",
			username: "",
			password: "sup3rsecret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := newService(repo).Register(context.Background(), tt.username, tt.password)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.setupMock == nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_AuthenticateAndVerify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("sup3rsecret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByUsername(gomock.Any(), "alice").
		Return(&auth.User{Username: "alice", PasswordHash: string(hash)}, nil)

	svc := newService(repo)

	token, err := svc.Authenticate(context.Background(), "alice", "sup3rsecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByUsername(gomock.Any(), "alice").
		Return(&auth.User{Username: "alice", PasswordHash: string(hash)}, nil)

	_, err = newService(repo).Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_VerifyToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newService(auth.NewMockRepository(ctrl))

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_VerifyToken_WrongSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw000000"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByUsername(gomock.Any(), "bob").
		Return(&auth.User{Username: "bob", PasswordHash: string(hash)}, nil)

	token, err := auth.NewService(repo, "other-secret", time.Hour).
		Authenticate(context.Background(), "bob", "pw000000")
	require.NoError(t, err)

	_, err = newService(auth.NewMockRepository(ctrl)).VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_Register_ShortPasswordMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	err := newService(auth.NewMockRepository(ctrl)).
		Register(context.Background(), "alice", "abc")
	assert.ErrorContains(t, err, "at least 6 characters")
}
