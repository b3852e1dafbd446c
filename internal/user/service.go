package user

import (
	"context"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

// StoreCreator is implemented by the store service. Merchant registration
// provisions one default storefront; the two writes are sequential, a failed
// store write does not roll the user back.
type StoreCreator interface {
	CreateDefaultStore(ctx context.Context, ownerID, name string) error
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    *string
	Country  *string
	City     *string
	Role     Role
}

type Service interface {
	Register(ctx context.Context, p RegisterParams) (string, *User, error)
	Login(ctx context.Context, username, password string) (string, *User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id string, p UpdateParams) (*User, error)
	Deactivate(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo   Repository
	stores StoreCreator
}

func NewService(repo Repository, stores StoreCreator) Service {
	return &service{repo: repo, stores: stores}
}

func (s *service) Register(ctx context.Context, p RegisterParams) (string, *User, error) {
	log := logger.FromCtx(ctx)

	if p.Role != "" && !p.Role.Valid() {
		return "", nil, ErrInvalidRole
	}

	hashed, err := HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, CreateParams{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hashed,
		FullName:     p.FullName,
		Phone:        p.Phone,
		Country:      p.Country,
		City:         p.City,
		Role:         p.Role,
	})
	if err != nil {
		log.Error("failed to create user", zap.String("username", p.Username), zap.Error(err))
		return "", nil, err
	}

	if u.Role == RoleMerchant && s.stores != nil {
		if err := s.stores.CreateDefaultStore(ctx, u.ID, u.FullName); err != nil {
			log.Warn("failed to create default store for merchant",
				zap.String("user_id", u.ID),
				zap.Error(err),
			)
		}
	}

	token, err := GenerateJWT(u.ID, u.Username, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
	)

	return token, u, nil
}

// Login accepts the username or the registered email address.
func (s *service) Login(ctx context.Context, username, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		u, err = s.repo.GetByEmail(ctx, username)
	}
	if err != nil {
		log.Info("login failed: account not found", zap.String("login", username))
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Info("login failed: password mismatch", zap.String("username", username))
		return "", nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, err := GenerateJWT(u.ID, u.Username, string(u.Role))
	return token, u, err
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, p UpdateParams) (*User, error) {
	if p.Role != nil && !p.Role.Valid() {
		return nil, ErrInvalidRole
	}
	return s.repo.Update(ctx, id, p)
}

func (s *service) Deactivate(ctx context.Context, id string) (*User, error) {
	inactive := false
	return s.repo.Update(ctx, id, UpdateParams{IsActive: &inactive})
}
