package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/sakan/student-housing/internal/core/domain"
	"github.com/sakan/student-housing/internal/core/ports"
	"github.com/sakan/student-housing/internal/infrastructure/store"
	"github.com/sakan/student-housing/internal/metrics"
)

const defaultAdminID = "admin-1"

// AdminCredential is the provisioned administrator. It is never stored in
// the accounts collection; a matching login synthesizes the account. The
// bypass is disabled unless both Email and PasswordHash are set.
type AdminCredential struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

func (a AdminCredential) enabled() bool {
	return a.Email != "" && a.PasswordHash != ""
}

// IdentityService implements registration, login and the current session.
type IdentityService struct {
	accounts *store.Collection[domain.Account]
	current  *store.Entry[domain.Account]
	session  *Session
	hasher   ports.PasswordHasher
	admin    AdminCredential
	clock    clockwork.Clock
	log      zerolog.Logger
}

var _ ports.IdentityService = (*IdentityService)(nil)

func NewIdentityService(
	kv ports.KeyValueStore,
	session *Session,
	hasher ports.PasswordHasher,
	admin AdminCredential,
	clock clockwork.Clock,
	log zerolog.Logger,
) *IdentityService {
	if admin.ID == "" {
		admin.ID = defaultAdminID
	}
	return &IdentityService{
		accounts: store.NewCollection[domain.Account](kv, store.KeyAccounts),
		current:  store.NewEntry[domain.Account](kv, store.KeyCurrentSession),
		session:  session,
		hasher:   hasher,
		admin:    admin,
		clock:    clock,
		log:      log,
	}
}

// Session returns the session this service writes to.
func (s *IdentityService) Session() *Session { return s.session }

// Register stores a new unapproved account. It returns ErrEmailTaken when an
// account with the same email exists; emails compare case-sensitively.
// Role-specific completeness is the caller's concern (see Validator).
func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput, password string) (*domain.Account, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleStudent
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	account := domain.Account{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		Role:         role,
		NationalID:   in.NationalID,
		UniversityID: in.UniversityID,
		Phone:        in.Phone,
		Address:      in.Address,
		Approved:     false,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	}

	taken := false
	err = s.accounts.Update(ctx, func(items []domain.Account) ([]domain.Account, bool) {
		if slices.ContainsFunc(items, func(a domain.Account) bool { return a.Email == account.Email }) {
			taken = true
			return items, false
		}
		return append(items, account), true
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to store account")
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		metrics.RegistrationsTotal.WithLabelValues(string(role), "email_taken").Inc()
		s.log.Info().Str("role", string(role)).Msg("registration rejected: email taken")
		return nil, domain.ErrEmailTaken
	}

	metrics.RegistrationsTotal.WithLabelValues(string(role), "created").Inc()
	s.log.Info().Str("account_id", account.ID).Str("role", string(role)).Msg("account registered")

	pub := account.Public()
	return &pub, nil
}

// Login authenticates an approved stored account, or the provisioned admin,
// and makes it the current session. On failure the session is unchanged and
// ErrAccountNotApproved or ErrInvalidCredentials is returned.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	accounts, err := s.accounts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	pending := false
	for _, a := range accounts {
		if a.Email != email || !s.hasher.Compare(a.PasswordHash, password) {
			continue
		}
		if !a.Approved {
			pending = true
			continue
		}
		if err := s.begin(ctx, a.Public()); err != nil {
			return nil, err
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		s.log.Info().Str("account_id", a.ID).Str("role", string(a.Role)).Msg("login succeeded")
		pub := a.Public()
		return &pub, nil
	}

	if s.admin.enabled() && email == s.admin.Email && s.hasher.Compare(s.admin.PasswordHash, password) {
		admin := s.adminAccount()
		if err := s.begin(ctx, admin); err != nil {
			return nil, err
		}
		metrics.LoginsTotal.WithLabelValues("admin").Inc()
		s.log.Info().Str("account_id", admin.ID).Msg("admin login succeeded")
		return &admin, nil
	}

	if pending {
		metrics.LoginsTotal.WithLabelValues("not_approved").Inc()
		return nil, domain.ErrAccountNotApproved
	}
	metrics.LoginsTotal.WithLabelValues("invalid").Inc()
	return nil, domain.ErrInvalidCredentials
}

// begin persists acc as the current session before adopting it, so a failed
// write leaves the session untouched.
func (s *IdentityService) begin(ctx context.Context, acc domain.Account) error {
	if err := s.current.Save(ctx, acc); err != nil {
		s.log.Error().Err(err).Msg("failed to persist session")
		return fmt.Errorf("login: %w", err)
	}
	s.session.set(acc)
	return nil
}

func (s *IdentityService) adminAccount() domain.Account {
	name := s.admin.Name
	if name == "" {
		name = "Administrator"
	}
	return domain.Account{
		ID:        s.admin.ID,
		Name:      name,
		Email:     s.admin.Email,
		Role:      domain.RoleAdmin,
		Approved:  true,
		CreatedAt: s.clock.Now().UTC(),
	}
}

// Logout clears the session and its persisted entry. The in-memory session
// is cleared even when removing the entry fails.
func (s *IdentityService) Logout(ctx context.Context) error {
	acc, _ := s.session.Current()
	s.session.clear()
	if err := s.current.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to remove persisted session")
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("account_id", acc.ID).Msg("logged out")
	return nil
}

// Restore rebuilds the session from the store; call once at start-up. An
// undecodable entry is discarded and the session stays anonymous.
func (s *IdentityService) Restore(ctx context.Context) error {
	acc, found, err := s.current.Load(ctx)
	if errors.Is(err, domain.ErrCorruptCollection) {
		s.log.Warn().Err(err).Msg("discarding unreadable session entry")
		s.session.clear()
		if clearErr := s.current.Clear(ctx); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to remove unreadable session entry")
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !found || acc.ID == "" {
		s.session.clear()
		return nil
	}

	s.session.set(acc.Public())
	s.log.Debug().Str("account_id", acc.ID).Msg("session restored")
	return nil
}

func (s *IdentityService) CurrentSession() (domain.Account, bool) {
	return s.session.Current()
}

func (s *IdentityService) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

// Accounts returns every stored account without credential material.
func (s *IdentityService) Accounts(ctx context.Context) ([]domain.Account, error) {
	return s.listAccounts(ctx, func(domain.Account) bool { return true })
}

// PendingAccounts returns accounts awaiting approval, in insertion order.
func (s *IdentityService) PendingAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.listAccounts(ctx, func(a domain.Account) bool { return !a.Approved })
}

func (s *IdentityService) listAccounts(ctx context.Context, keep func(domain.Account) bool) ([]domain.Account, error) {
	items, err := s.accounts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]domain.Account, 0, len(items))
	for _, a := range items {
		if keep(a) {
			out = append(out, a.Public())
		}
	}
	return out, nil
}

// ApproveAccount opens the approval gate of account id. Unknown ids and
// already approved accounts are no-ops.
func (s *IdentityService) ApproveAccount(ctx context.Context, id string) error {
	approved := false
	err := s.accounts.Update(ctx, func(items []domain.Account) ([]domain.Account, bool) {
		i := slices.IndexFunc(items, func(a domain.Account) bool { return a.ID == id })
		if i < 0 || items[i].Approved {
			return items, false
		}
		a := items[i]
		a.Approved = true
		items[i] = a
		approved = true
		return items, true
	})
	if err != nil {
		return fmt.Errorf("approve account: %w", err)
	}
	if approved {
		metrics.ApprovalsTotal.WithLabelValues("account", "approved").Inc()
		s.log.Info().Str("account_id", id).Msg("account approved")
	}
	return nil
}

// RejectAccount removes account id outright. Unknown ids are no-ops.
func (s *IdentityService) RejectAccount(ctx context.Context, id string) error {
	removed := false
	err := s.accounts.Update(ctx, func(items []domain.Account) ([]domain.Account, bool) {
		i := slices.IndexFunc(items, func(a domain.Account) bool { return a.ID == id })
		if i < 0 {
			return items, false
		}
		removed = true
		return slices.Delete(items, i, i+1), true
	})
	if err != nil {
		return fmt.Errorf("reject account: %w", err)
	}
	if removed {
		metrics.ApprovalsTotal.WithLabelValues("account", "rejected").Inc()
		s.log.Info().Str("account_id", id).Msg("account rejected")
	}
	return nil
}
