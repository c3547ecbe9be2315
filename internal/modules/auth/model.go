package auth

import "errors"

// User is the profile document stored under user:{id}. Role is
// informational only and never used as an access-control dimension.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// credentials is stored under user-cred:{email}, separate from the
// profile so the hash never rides along in a session response.
type credentials struct {
	UserID       string `json:"userId"`
	PasswordHash string `json:"passwordHash"`
}

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoAuthHeader       = errors.New("no authorization header")
	ErrNoToken            = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
