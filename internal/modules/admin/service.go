package admin

import "context"

// Service defines the interface for administrator account management.
type Service interface {
	ListAdmins(ctx context.Context) ([]*Admin, error)
	GetAdmin(ctx context.Context, id int64) (*Admin, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (*Admin, error)
	UpdateAdmin(ctx context.Context, id int64, req UpdateAdminRequest) (*Admin, error)
	DeleteAdmin(ctx context.Context, callerID, id int64) error
	// SeedSuperAdmin creates the first super-admin when no account exists yet. It reports
	// whether an account was created.
	SeedSuperAdmin(ctx context.Context, username, password string) (bool, error)
}
