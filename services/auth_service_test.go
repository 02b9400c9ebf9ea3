package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/burnboard/dto"
	"github.com/burnboard/models"
)

// MockUserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByID(id string) (models.User, error) {
	args := m.Called(id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(email string) (models.User, error) {
	args := m.Called(email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) Create(user models.User) (models.User, error) {
	args := m.Called(user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) UpdateFields(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

// MockTokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) SaveVerifyToken(ctx context.Context, token, userID string) error {
	args := m.Called(token, userID)
	return args.Error(0)
}

func (m *MockTokenStore) ConsumeVerifyToken(ctx context.Context, token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) SaveResetToken(ctx context.Context, token, userID string) error {
	args := m.Called(token, userID)
	return args.Error(0)
}

func (m *MockTokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// MockMailPublisher
type MockMailPublisher struct {
	mock.Mock
}

func (m *MockMailPublisher) Publish(routingKey string, payload any) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

func newTestAuthService(users *MockUserStore, tokens *MockTokenStore, mail *MockMailPublisher) *AuthService {
	return NewAuthService(users, tokens, mail, zap.NewNop())
}

func hashPassword(t *testing.T, password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestRegisterHashesPasswordAndSendsVerification(t *testing.T) {
	users := new(MockUserStore)
	tokens := new(MockTokenStore)
	mail := new(MockMailPublisher)
	service := newTestAuthService(users, tokens, mail)

	users.On("FindByEmail", "dana@example.com").Return(models.User{}, models.ErrNotFound).Once()

	var created models.User
	users.On("Create", mock.AnythingOfType("models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(models.User)
	}).Return(models.User{ID: "u1", Email: "dana@example.com", Name: "Dana"}, nil).Once()

	tokens.On("SaveVerifyToken", mock.AnythingOfType("string"), "u1").Return(nil).Once()
	mail.On("Publish", RouteVerificationMail, mock.AnythingOfType("dto.VerificationMailPayload")).Return(nil).Once()

	user, err := service.Register(context.Background(), dto.RegisterRequest{
		Email:    "dana@example.com",
		Password: "hunter22",
		Name:     "Dana",
	})
	require.NoError(t, err)
	require.Empty(t, user.Password)

	// Stored password is a bcrypt hash of the plaintext
	require.NotEqual(t, "hunter22", created.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter22")))

	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := new(MockUserStore)
	service := newTestAuthService(users, new(MockTokenStore), new(MockMailPublisher))

	users.On("FindByEmail", "dana@example.com").Return(models.User{ID: "u1"}, nil).Once()

	_, err := service.Register(context.Background(), dto.RegisterRequest{
		Email:    "dana@example.com",
		Password: "hunter22",
		Name:     "Dana",
	})
	require.EqualError(t, err, "email already registered")
	users.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := new(MockUserStore)
	service := newTestAuthService(users, new(MockTokenStore), new(MockMailPublisher))

	stored := models.User{
		ID:       "u1",
		Email:    "dana@example.com",
		Password: hashPassword(t, "hunter22"),
	}
	users.On("FindByEmail", "dana@example.com").Return(stored, nil)

	t.Run("Success", func(t *testing.T) {
		resp, err := service.Login(dto.LoginRequest{Email: "dana@example.com", Password: "hunter22"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		require.Empty(t, resp.User.Password)

		claims, err := ValidateToken(resp.Token)
		require.NoError(t, err)
		require.Equal(t, "u1", claims.UserID)
		require.Equal(t, "dana@example.com", claims.Email)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Login(dto.LoginRequest{Email: "dana@example.com", Password: "nope"})
		require.EqualError(t, err, "invalid email or password")
	})
}

func TestUpdatePasswordRequiresCurrentProof(t *testing.T) {
	users := new(MockUserStore)
	service := newTestAuthService(users, new(MockTokenStore), new(MockMailPublisher))

	stored := models.User{ID: "u1", Password: hashPassword(t, "old-pass")}
	users.On("FindByID", "u1").Return(stored, nil)

	err := service.UpdatePassword("u1", "wrong-pass", "new-pass")
	require.EqualError(t, err, "current password is incorrect")
	users.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)

	var fields map[string]interface{}
	users.On("UpdateFields", "u1", mock.Anything).Run(func(args mock.Arguments) {
		fields = args.Get(1).(map[string]interface{})
	}).Return(nil).Once()

	require.NoError(t, service.UpdatePassword("u1", "old-pass", "new-pass"))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(fields["password"].(string)), []byte("new-pass")))
}

func TestVerifyEmailConsumesToken(t *testing.T) {
	users := new(MockUserStore)
	tokens := new(MockTokenStore)
	service := newTestAuthService(users, tokens, new(MockMailPublisher))

	tokens.On("ConsumeVerifyToken", "tok123").Return("u1", nil).Once()
	users.On("UpdateFields", "u1", map[string]interface{}{"email_verified": true}).Return(nil).Once()

	require.NoError(t, service.VerifyEmail(context.Background(), "tok123"))
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	users := new(MockUserStore)
	service := newTestAuthService(users, new(MockTokenStore), new(MockMailPublisher))

	users.On("FindByID", "u1").Return(models.User{ID: "u1", EmailVerified: true}, nil).Once()

	err := service.ResendVerification(context.Background(), "u1")
	require.EqualError(t, err, "email already verified")
}

func TestRequestPasswordResetUnknownAddressIsSilent(t *testing.T) {
	users := new(MockUserStore)
	mail := new(MockMailPublisher)
	service := newTestAuthService(users, new(MockTokenStore), mail)

	users.On("FindByEmail", "ghost@example.com").Return(models.User{}, models.ErrNotFound).Once()

	// No error and no mail: the response must not leak registration state
	require.NoError(t, service.RequestPasswordReset(context.Background(), "ghost@example.com"))
	mail.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestResetPasswordFlow(t *testing.T) {
	users := new(MockUserStore)
	tokens := new(MockTokenStore)
	mail := new(MockMailPublisher)
	service := newTestAuthService(users, tokens, mail)

	stored := models.User{ID: "u1", Email: "dana@example.com", Name: "Dana"}
	users.On("FindByEmail", "dana@example.com").Return(stored, nil).Once()

	var mailedToken string
	tokens.On("SaveResetToken", mock.AnythingOfType("string"), "u1").Run(func(args mock.Arguments) {
		mailedToken = args.String(0)
	}).Return(nil).Once()
	mail.On("Publish", RoutePasswordResetMail, mock.MatchedBy(func(p dto.PasswordResetMailPayload) bool {
		return p.Email == "dana@example.com" && p.Token != ""
	})).Return(nil).Once()

	require.NoError(t, service.RequestPasswordReset(context.Background(), "dana@example.com"))
	require.NotEmpty(t, mailedToken)

	tokens.On("ConsumeResetToken", mailedToken).Return("u1", nil).Once()

	var fields map[string]interface{}
	users.On("UpdateFields", "u1", mock.Anything).Run(func(args mock.Arguments) {
		fields = args.Get(1).(map[string]interface{})
	}).Return(nil).Once()

	require.NoError(t, service.ResetPassword(context.Background(), mailedToken, "brand-new"))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(fields["password"].(string)), []byte("brand-new")))
}
