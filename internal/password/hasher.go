// Package password provides one-way password hashing and verification.
package password

// Hasher is the credential-hashing contract consumed by the usecases.
type Hasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches digest. A mismatch is not an
	// error; errors are reserved for malformed digests.
	Verify(plain, digest string) (bool, error)
}
