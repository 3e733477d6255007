package service

import (
	"testing"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest() (AuthService, *mockUserRepo, *jwt.Manager) {
	userRepo := new(mockUserRepo)
	jwtManager := jwt.NewManager("test-secret", 60, 168)
	return NewAuthService(userRepo, jwtManager), userRepo, jwtManager
}

func TestAuthService_Register(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()

	userRepo.On("FindByUsername", "alice").Return(nil, common.ErrUserNotFound)
	userRepo.On("FindByEmail", "alice@example.com").Return(nil, common.ErrUserNotFound)
	userRepo.On("Create", mock.MatchedBy(func(u *domain.User) bool {
		// Password must never be stored in the clear.
		return u.Username == "alice" && u.Password != "hunter2secret"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.User).ID = 1
	}).Return(nil)

	resp, err := svc.Register(&RegisterRequest{
		Username: " alice ",
		Email:    "Alice@Example.com",
		Password: "hunter2secret",
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()

	userRepo.On("FindByUsername", "alice").Return(&domain.User{ID: 1, Username: "alice"}, nil)

	_, err := svc.Register(&RegisterRequest{Username: "alice", Email: "a@example.com", Password: "hunter2secret"})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
	user := &domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: string(hash)}
	userRepo.On("FindByEmail", "alice@example.com").Return(user, nil)

	resp, err := svc.Login(&LoginRequest{Email: "alice@example.com", Password: "hunter2secret"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()

	userRepo.On("FindByEmail", "ghost@example.com").Return(nil, common.ErrUserNotFound)

	// Unknown account and bad password are indistinguishable.
	_, err := svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, userRepo, jwtManager := newAuthServiceForTest()

	user := &domain.User{ID: 1, Username: "alice"}
	userRepo.On("FindByID", uint(1)).Return(user, nil)

	refresh, err := jwtManager.GenerateRefreshToken(1)
	assert.NoError(t, err)

	pair, err := svc.RefreshToken(refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthService_Me_IncludesEmail(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest()

	user := &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}
	userRepo.On("FindByID", uint(1)).Return(user, nil)

	resp, err := svc.Me(1)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.Email)
}
