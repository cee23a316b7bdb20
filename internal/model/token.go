package model

// SessionCodec signs and verifies session tokens.
type SessionCodec interface {
	Encode(session Session) (string, error)
	Decode(token string) (Session, error)
}

// PasswordHasher derives and checks password credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, storedHash string) bool
}
