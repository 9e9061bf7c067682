package auth

import (
	"context"

	"github.com/mmynk/bithub/internal/models"
)

// Authenticator creates and verifies accounts. The service layer only sees
// this interface; PasswordAuthenticator is the one implementation.
type Authenticator interface {
	// Register creates an account. An empty displayName defaults to the
	// local part of the email.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account for email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	ValidateCredential(credential string) error
}
