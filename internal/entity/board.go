package entity

import "database/sql"

type Board struct {
	Base
	UniversityID     string `gorm:"index;size:64"`
	Title            string `gorm:"index;size:255"`
	Description      string
	Department       string `gorm:"index;size:128"`
	Year             int
	CircleID         sql.NullString `gorm:"size:64"`
	CreatedBy        string         `gorm:"size:64"`
	ImageURL         string
	PostCount        int64
	LatestPostAt     sql.NullTime
	BestAnswerPostID sql.NullString `gorm:"size:64"`
}
