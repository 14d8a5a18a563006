package auth

import (
	"context"
	"errors"

	"github.com/kuma-mall/admin-backend/internal/apperr"
	"github.com/kuma-mall/admin-backend/internal/modules/access"
	"github.com/kuma-mall/admin-backend/internal/modules/admin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = apperr.Unauthenticated("invalid username or password")

// dummyHash keeps the cost of a login for an unknown username close to that of a wrong
// password.
var dummyHash []byte

func init() {
	h, err := bcrypt.GenerateFromPassword([]byte("kuma-mall-dummy"), admin.PasswordCost)
	if err != nil {
		panic("auth: generate dummy hash: " + err.Error())
	}
	dummyHash = h
}

type service struct {
	adminRepo admin.Repository
	issuer    *access.Issuer
	logger    *zap.Logger
}

// NewService creates a new auth service.
func NewService(adminRepo admin.Repository, issuer *access.Issuer, logger *zap.Logger) Service {
	return &service{adminRepo: adminRepo, issuer: issuer, logger: logger}
}

func (s *service) Login(ctx context.Context, username, password string) (*Session, error) {
	a, err := s.adminRepo.GetByUsername(ctx, username)
	if errors.Is(err, admin.ErrAdminNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.logger.Info("login rejected", zap.String("reason", "unknown user"))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("reason", "bad password"), zap.Int64("admin_id", a.ID))
		return nil, ErrInvalidCredentials
	}

	id := a.Identity()
	token, expiresAt, err := s.issuer.Issue(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.Int64("admin_id", a.ID))
	return &Session{Token: token, ExpiresAt: expiresAt, Admin: id}, nil
}
