package models

import "time"

// User represents an account entity used for authentication, authorization,
// and content attribution. Sensitive fields must never leave the server
// process in serialized form.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique e-mail address of the user.
	// It is normalized to lowercase before storage and before every lookup,
	// so comparisons at the persistence layer are exact-match.
	Email string `json:"email"`

	// UserName is the unique public handle of the user.
	// Uniqueness is enforced case- and accent-insensitively at the
	// persistence layer ("Alice" and "alice" collide).
	UserName string `json:"userName"`

	// Password carries the plain-text password only on inbound requests
	// (registration, login, password reset). It is hashed immediately and
	// never persisted or echoed back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in place of the password.
	// Excluded from JSON serialization unconditionally.
	PasswordHash string `json:"-"`

	// IsAdmin marks the user as having elevated privileges.
	IsAdmin bool `json:"isAdmin"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// MobileNo is a contact phone number. No uniqueness constraint.
	MobileNo string `json:"mobileNo"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the most recent profile mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns a copy of the user safe for serialization: the plain-text
// password (if any survived this far) is dropped along with the stored hash.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate describes a partial profile update. Nil fields are left
// untouched; non-nil fields overwrite the stored value after trimming.
type UserUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	MobileNo  *string `json:"mobileNo,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.MobileNo == nil
}

// AdminUserUpdate describes an administrative update of an arbitrary user.
// In addition to the profile fields it may change the e-mail address and
// the privilege flag.
type AdminUserUpdate struct {
	UserID    int64   `json:"userId"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	MobileNo  *string `json:"mobileNo,omitempty"`
	Email     *string `json:"email,omitempty"`
	IsAdmin   *bool   `json:"isAdmin,omitempty"`
}

// Empty reports whether the update carries no mutable fields.
func (u AdminUserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.MobileNo == nil &&
		u.Email == nil && u.IsAdmin == nil
}
