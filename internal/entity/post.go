package entity

type Post struct {
	Base
	BoardID      string `gorm:"index;size:64"`
	UniversityID string `gorm:"index;size:64"`
	AuthorID     string `gorm:"index;size:64"`
	Text         string
	ImageURL     string
	ThanksCount  int64
}
