package auth

import "context"

// Service defines the identity provider and verifier surface.
type Service interface {
	// SignUp registers a new user and mirrors the profile into the store.
	// role is informational only; the public signup route always passes "".
	SignUp(ctx context.Context, email, password, name, role string) (*User, error)

	// SignIn checks credentials and issues a bearer token.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// VerifyToken resolves a bearer token to the user it identifies.
	// Every mutating endpoint calls this before doing anything else.
	VerifyToken(ctx context.Context, token string) (*User, error)

	// SignOut revokes the presented token server-side.
	SignOut(ctx context.Context, token string) error
}
