package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/campusboard/backend/config"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/crypto"
	"github.com/campusboard/backend/pkg/xcontext"
)

// Password is the plain password of every fixture account.
const Password = "123456789"

var (
	KAIST = config.University{
		ID:           "kaist",
		Name:         "KAIST",
		EmailDomains: []string{"kaist.ac.kr"},
		Departments:  []string{"Computer Science", "Physics"},
	}

	SNU = config.University{
		ID:           "snu",
		Name:         "Seoul National University",
		EmailDomains: []string{"snu.ac.kr"},
		Departments:  []string{"Economics"},
	}
)

var (
	User1 = &entity.User{
		Base:         entity.Base{ID: "user1"},
		Name:         "Alice",
		Email:        "alice@kaist.ac.kr",
		UniversityID: KAIST.ID,
		Department:   "Computer Science",
		Year:         2,
	}

	User2 = &entity.User{
		Base:         entity.Base{ID: "user2"},
		Name:         "Bob",
		Email:        "bob@kaist.ac.kr",
		UniversityID: KAIST.ID,
		Department:   "Computer Science",
		Year:         3,
	}

	User3 = &entity.User{
		Base:         entity.Base{ID: "user3"},
		Name:         "Carol",
		Email:        "carol@kaist.ac.kr",
		UniversityID: KAIST.ID,
		Department:   "Physics",
		Year:         1,
	}

	Users = []*entity.User{User1, User2, User3}

	Board1 = &entity.Board{
		Base:         entity.Base{ID: "board1", CreatedAt: time.Now().Add(-time.Hour)},
		UniversityID: KAIST.ID,
		Title:        "Midterm Review Session",
		Description:  "Questions about the midterm",
		Department:   "Computer Science",
		Year:         2,
		CreatedBy:    User1.ID,
	}

	Board2 = &entity.Board{
		Base:         entity.Base{ID: "board2", CreatedAt: time.Now().Add(-10 * 24 * time.Hour)},
		UniversityID: KAIST.ID,
		Title:        "Final exam tips",
		Description:  "Share your tips",
		Department:   "Computer Science",
		Year:         2,
		CreatedBy:    User2.ID,
	}

	Board3 = &entity.Board{
		Base:         entity.Base{ID: "board3", CreatedAt: time.Now().Add(-40 * 24 * time.Hour)},
		UniversityID: KAIST.ID,
		Title:        "Lab safety",
		Department:   "Physics",
		Year:         1,
		CreatedBy:    User3.ID,
	}

	Boards = []*entity.Board{Board1, Board2, Board3}

	Post1 = &entity.Post{
		Base:         entity.Base{ID: "post1"},
		BoardID:      Board1.ID,
		UniversityID: KAIST.ID,
		AuthorID:     User2.ID,
		Text:         "Does the midterm cover chapter 5?",
	}

	Posts = []*entity.Post{Post1}

	Circle1 = &entity.Circle{
		Base:         entity.Base{ID: "circle1"},
		UniversityID: KAIST.ID,
		Name:         "Go Study Group",
		Description:  "We read and write Go",
		Category:     "study",
		Schedule:     "Tuesday 19:00",
		CreatedBy:    User1.ID,
		MemberCount:  1,
	}

	Circles = []*entity.Circle{Circle1}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertBoards(ctx)
	InsertPosts(ctx)
	InsertCircles(ctx)
}

func InsertUsers(ctx context.Context) {
	passwordHash, err := crypto.HashPassword(Password)
	if err != nil {
		panic(err)
	}

	for _, u := range Users {
		account := &entity.Account{
			Base:          entity.Base{ID: u.ID},
			Email:         u.Email,
			PasswordHash:  passwordHash,
			EmailVerified: true,
		}
		if err := xcontext.DB(ctx).Create(account).Error; err != nil {
			panic(err)
		}

		user := *u
		if err := xcontext.DB(ctx).Create(&user).Error; err != nil {
			panic(err)
		}
	}
}

func InsertBoards(ctx context.Context) {
	for _, b := range Boards {
		board := *b
		if err := xcontext.DB(ctx).Create(&board).Error; err != nil {
			panic(err)
		}
	}
}

func InsertPosts(ctx context.Context) {
	for _, p := range Posts {
		post := *p
		if err := xcontext.DB(ctx).Create(&post).Error; err != nil {
			panic(err)
		}
	}

	err := xcontext.DB(ctx).Model(&entity.Board{}).
		Where("id=?", Board1.ID).
		Updates(map[string]any{
			"post_count":     1,
			"latest_post_at": sql.NullTime{Valid: true, Time: time.Now().Add(-30 * time.Minute)},
		}).Error
	if err != nil {
		panic(err)
	}
}

func InsertCircles(ctx context.Context) {
	for _, c := range Circles {
		circle := *c
		if err := xcontext.DB(ctx).Create(&circle).Error; err != nil {
			panic(err)
		}

		member := &entity.CircleMember{CircleID: c.ID, UserID: c.CreatedBy}
		if err := xcontext.DB(ctx).Create(member).Error; err != nil {
			panic(err)
		}
	}
}
