package service

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakan/student-housing/internal/core/ports"
	"github.com/sakan/student-housing/internal/infrastructure/db/memory"
)

const (
	adminEmail    = "admin@sakan.test"
	adminPassword = "admin-secret"
)

var testEpoch = time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	kv       *memory.KVStore
	clock    *clockwork.FakeClock
	hasher   *BcryptHasher
	identity *IdentityService
	catalog  *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(adminPassword)
	require.NoError(t, err)

	f := &fixture{
		kv:     memory.NewKVStore(),
		clock:  clockwork.NewFakeClockAt(testEpoch),
		hasher: hasher,
	}
	f.identity, f.catalog = f.services(AdminCredential{Email: adminEmail, PasswordHash: hash})
	return f
}

// services builds a fresh pair of services over the fixture's store, as a
// newly started process would.
func (f *fixture) services(admin AdminCredential) (*IdentityService, *CatalogService) {
	log := zerolog.Nop()
	return NewIdentityService(f.kv, NewSession(), f.hasher, admin, f.clock, log),
		NewCatalogService(f.kv, f.clock, log)
}

func (f *fixture) raw(t *testing.T, key string) []byte {
	t.Helper()
	b, _, err := f.kv.Get(context.Background(), key)
	require.NoError(t, err)
	return b
}

func studentInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:         "Mona",
		Email:        email,
		Role:         "student",
		NationalID:   "29901011234567",
		UniversityID: "U-100",
	}
}

func ownerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:       "Karim",
		Email:      email,
		Role:       "owner",
		NationalID: "28801011234567",
		Phone:      "01000000000",
		Address:    "Dokki, Giza",
	}
}

func listingInput(ownerID string) ports.NewListingInput {
	return ports.NewListingInput{
		OwnerID:     ownerID,
		Title:       "Quiet room",
		Address:     "Heliopolis, Cairo",
		Description: "Single room with balcony",
		Rent:        1800,
		Images:      []string{"data:image/png;base64,iVBORw0KGgo="},
		Type:        "private",
	}
}
