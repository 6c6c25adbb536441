package domain

// User is a stored account record. No login flow exists; the type is
// carried because the storage contract defines it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}
