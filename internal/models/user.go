package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique).
	// Used for login and as the owner key of every other record.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Stored under "password" for compatibility with existing data files.
	PasswordHash string `json:"password"`
}

// NewUser creates a user. The ID is assigned when the user is stored.
func NewUser(email, passwordHash string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
	}
}

func (u *User) GetID() string { return u.ID }
func (u *User) SetID(id string) { u.ID = id }
