package ports

// PasswordHasher derives and verifies stored credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
