package service

import (
	"sync"

	"github.com/sakan/student-housing/internal/core/domain"
)

// Session holds the account acting in this process. It is either anonymous
// or authenticated; IdentityService is the only writer.
type Session struct {
	mu      sync.RWMutex
	current *domain.Account
}

func NewSession() *Session {
	return &Session{}
}

// Current returns the acting account, if any.
func (s *Session) Current() (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Account{}, false
	}
	return *s.current, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Authorize returns the acting account when it holds one of roles. With no
// roles any authenticated account passes. Callers deny the whole action on
// error.
func (s *Session) Authorize(roles ...domain.Role) (domain.Account, error) {
	acc, ok := s.Current()
	if !ok {
		return domain.Account{}, domain.ErrUnauthenticated
	}
	if len(roles) == 0 {
		return acc, nil
	}
	for _, r := range roles {
		if acc.Role == r {
			return acc, nil
		}
	}
	return domain.Account{}, domain.ErrForbidden
}

func (s *Session) set(acc domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &acc
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
