package providers

// PasswordHasher defines the interface for credential hashing. Hashing is a
// boundary concern; the stores only ever see the resulting hash.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password
	Hash(password string) (string, error)

	// Compare checks a plaintext password against a stored hash
	Compare(hash, password string) error
}
