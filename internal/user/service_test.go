package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p CreateParams) (*User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, p UpdateParams) (*User, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockStoreCreator struct {
	mock.Mock
}

func (m *MockStoreCreator) CreateDefaultStore(ctx context.Context, ownerID, name string) error {
	args := m.Called(ctx, ownerID, name)
	return args.Error(0)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		expected := &User{ID: "u-1", Username: "john", Email: "john@example.com", Role: RoleCustomer, IsActive: true}
		mockRepo.On("Create", ctx, mock.AnythingOfType("user.CreateParams")).Return(expected, nil)

		token, u, err := svc.Register(ctx, RegisterParams{
			Username: "john", Email: "john@example.com", Password: "password123",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, expected, u)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MerchantGetsDefaultStore", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockStores := new(MockStoreCreator)
		svc := NewService(mockRepo, mockStores)

		merchant := &User{ID: "u-2", Username: "acme", FullName: "Acme Inc", Role: RoleMerchant, IsActive: true}
		mockRepo.On("Create", ctx, mock.AnythingOfType("user.CreateParams")).Return(merchant, nil)
		mockStores.On("CreateDefaultStore", ctx, "u-2", "Acme Inc").Return(nil)

		_, _, err := svc.Register(ctx, RegisterParams{
			Username: "acme", Email: "acme@example.com", Password: "password123",
			FullName: "Acme Inc", Role: RoleMerchant,
		})

		assert.NoError(t, err)
		mockStores.AssertExpectations(t)
	})

	t.Run("StoreFailureDoesNotRollBackUser", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockStores := new(MockStoreCreator)
		svc := NewService(mockRepo, mockStores)

		merchant := &User{ID: "u-3", Username: "bob", FullName: "Bob", Role: RoleMerchant, IsActive: true}
		mockRepo.On("Create", ctx, mock.AnythingOfType("user.CreateParams")).Return(merchant, nil)
		mockStores.On("CreateDefaultStore", ctx, "u-3", "Bob").Return(errors.New("store write failed"))

		token, u, err := svc.Register(ctx, RegisterParams{
			Username: "bob", Email: "bob@example.com", Password: "password123",
			FullName: "Bob", Role: RoleMerchant,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, merchant, u)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("Create", ctx, mock.AnythingOfType("user.CreateParams")).Return(nil, ErrUsernameTaken)

		_, _, err := svc.Register(ctx, RegisterParams{Username: "john", Password: "x"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		svc := NewService(new(MockRepository), nil)

		_, _, err := svc.Register(ctx, RegisterParams{Username: "x", Password: "x", Role: Role("superuser")})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	hashed, err := HashPassword("admin123")
	require.NoError(t, err)

	seeded := &User{
		ID: "u-1", Username: "admin", PasswordHash: hashed,
		Role: RoleAdmin, IsActive: true,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("GetByUsername", ctx, "admin").Return(seeded, nil)

		token, u, err := svc.Login(ctx, "admin", "admin123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("GetByUsername", ctx, "admin").Return(seeded, nil)

		_, _, err := svc.Login(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("ByEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("GetByUsername", ctx, "admin@example.com").Return(nil, ErrUserNotFound)
		mockRepo.On("GetByEmail", ctx, "admin@example.com").Return(seeded, nil)

		token, u, err := svc.Login(ctx, "admin@example.com", "admin123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "admin", u.Username)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, ErrUserNotFound)
		mockRepo.On("GetByEmail", ctx, "ghost").Return(nil, ErrUserNotFound)

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DisabledAccount", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nil)

		disabled := *seeded
		disabled.IsActive = false
		mockRepo.On("GetByUsername", ctx, "admin").Return(&disabled, nil)

		_, _, err := svc.Login(ctx, "admin", "admin123")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestService_Deactivate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, nil)

	inactive := &User{ID: "u-1", Username: "john", IsActive: false}
	mockRepo.On("Update", ctx, "u-1", mock.MatchedBy(func(p UpdateParams) bool {
		return p.IsActive != nil && !*p.IsActive
	})).Return(inactive, nil)

	u, err := svc.Deactivate(ctx, "u-1")
	assert.NoError(t, err)
	assert.False(t, u.IsActive)
}
