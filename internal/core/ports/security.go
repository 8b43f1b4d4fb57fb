package ports

// PasswordHasher is the one-way credential transform. Hash output embeds
// its own salt; Verify never panics on malformed input, it returns false.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// SessionIssuer mints and checks the stateless signed tokens that bind a
// request to a user identity. Verify returns the embedded subject id, or
// domain.ErrInvalidToken / domain.ErrExpiredToken.
type SessionIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
