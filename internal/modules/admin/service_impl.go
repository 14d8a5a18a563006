package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/kuma-mall/admin-backend/internal/validate"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for every stored password.
const PasswordCost = 10

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new admin service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// HashPassword hashes password with a per-record random salt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *service) ListAdmins(ctx context.Context) ([]*Admin, error) {
	return s.repo.List(ctx)
}

func (s *service) GetAdmin(ctx context.Context, id int64) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*Admin, error) {
	role := access.RoleAdmin
	if req.Role != "" {
		role = access.Role(req.Role)
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	_, err := s.repo.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, ErrAdminNotFound) {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	a := &Admin{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("admin created", zap.Int64("admin_id", a.ID), zap.String("role", string(a.Role)))
	return a, nil
}

func (s *service) UpdateAdmin(ctx context.Context, id int64, req UpdateAdminRequest) (*Admin, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = hash
	}
	if req.Role != nil && *req.Role != "" {
		role := access.Role(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		a.Role = role
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) DeleteAdmin(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("admin deleted", zap.Int64("admin_id", id), zap.Int64("by", callerID))
	return nil
}

func (s *service) SeedSuperAdmin(ctx context.Context, username, password string) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	req := CreateAdminRequest{
		Username: username,
		Password: password,
		Role:     string(access.RoleSuperAdmin),
	}
	if err := validate.Struct(req); err != nil {
		return false, err
	}
	if _, err := s.CreateAdmin(ctx, req); err != nil {
		return false, err
	}
	return true, nil
}
