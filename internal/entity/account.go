package entity

import "database/sql"

// Account holds the credentials of a user. Its ID is shared with the User
// document, which may be missing when registration did not complete.
type Account struct {
	Base
	Email                 string `gorm:"unique;size:255"`
	PasswordHash          string
	EmailVerified         bool
	VerificationTokenHash string `gorm:"index;size:128"`
	VerificationExpiresAt sql.NullTime
}
