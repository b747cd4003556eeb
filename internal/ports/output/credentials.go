package output

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// TokenVerifier resolves a bearer credential to a user id. It fails with
// domain.ErrUnauthenticated on a missing, invalid or expired credential.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}
