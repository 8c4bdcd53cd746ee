package entity

import "database/sql"

type User struct {
	Base
	Name           string
	Email          string `gorm:"index;size:255"`
	AvatarURL      string
	UniversityID   string `gorm:"index;size:64"`
	Department     string
	Year           int
	Bio            string
	Followers      Array[string] `gorm:"type:text"`
	Following      Array[string] `gorm:"type:text"`
	Points         int64
	Badges         Array[string] `gorm:"type:text"`
	SuspendedUntil sql.NullTime

	// Version is bumped by every write of Followers, Following or Badges.
	// Those writes only succeed when the version has not moved since read.
	Version int64
}
