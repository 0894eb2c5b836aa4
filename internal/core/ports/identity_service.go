package ports

import (
	"context"

	"github.com/sakan/student-housing/internal/core/domain"
)

// RegisterInput carries the profile fields of a new account. Role specific
// fields (UniversityID for students, Phone and Address for owners) are
// checked by callers before Register via service.Validator.
type RegisterInput struct {
	Name         string      `json:"name"         validate:"required"`
	Email        string      `json:"email"        validate:"required,email"`
	Role         domain.Role `json:"role"         validate:"required,oneof=student owner"`
	NationalID   string      `json:"nationalId"   validate:"required"`
	UniversityID string      `json:"universityId" validate:"required_if=Role student"`
	Phone        string      `json:"phone"        validate:"required_if=Role owner"`
	Address      string      `json:"address"      validate:"required_if=Role owner"`
}

// IdentityService answers who is acting and whether they may act.
type IdentityService interface {
	Register(ctx context.Context, in RegisterInput, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Account, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	CurrentSession() (domain.Account, bool)
	IsAuthenticated() bool

	Accounts(ctx context.Context) ([]domain.Account, error)
	PendingAccounts(ctx context.Context) ([]domain.Account, error)
	ApproveAccount(ctx context.Context, id string) error
	RejectAccount(ctx context.Context, id string) error
}
