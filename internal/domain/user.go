package domain

// User represents an account in the system.
//
// Accounts are created only by the startup seeding step; there is no public
// registration. Passwords are stored as Argon2id hashes, never plaintext.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash,omitempty"` // Filter from API responses.
	IsAdmin      bool   `json:"is_admin"`
}
