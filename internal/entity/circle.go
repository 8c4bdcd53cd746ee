package entity

import (
	"database/sql"
	"time"
)

type Circle struct {
	Base
	UniversityID    string `gorm:"index;size:64"`
	Name            string `gorm:"index;size:255"`
	Description     string
	Category        string `gorm:"index;size:64"`
	Schedule        string
	CreatedBy       string `gorm:"size:64"`
	ImageURL        string
	MemberCount     int64
	QuestionBoardID sql.NullString `gorm:"size:64"`
}

type CircleMember struct {
	CircleID  string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"primaryKey;size:64"`
	CreatedAt time.Time
}
