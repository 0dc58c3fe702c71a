package models

import "time"

// User is the stored user record. PasswordHash never leaves the server;
// external responses are built from Public().
type User struct {
	ID           int64
	Username     string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the sanitized external view of a user. It has no password
// field at all, so it cannot leak one.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the sanitized view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// UserUpdate is a partial update: nil fields are left untouched, set
// fields are rewritten. Password, when set, is re-hashed by the service
// before it reaches storage.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Name == nil && u.Password == nil
}
