package authenticator

import "time"

type TokenEngine interface {
	// Generate signs obj into a token which expires after expiration.
	Generate(expiration time.Duration, obj any) (string, error)

	// Verify checks the token and decodes its payload into obj.
	Verify(token string, obj any) error
}
