package model

type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	AvatarURL      string   `json:"avatar_url"`
	UniversityID   string   `json:"university_id"`
	Department     string   `json:"department"`
	Year           int      `json:"year"`
	Bio            string   `json:"bio"`
	Points         int64    `json:"points"`
	Badges         []string `json:"badges"`
	FollowerCount  int      `json:"follower_count"`
	FollowingCount int      `json:"following_count"`
	IsFollowing    bool     `json:"is_following"`
	CreatedAt      string   `json:"created_at"`
}

type ShortUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type Board struct {
	ID               string    `json:"id"`
	UniversityID     string    `json:"university_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Department       string    `json:"department"`
	Year             int       `json:"year"`
	CircleID         string    `json:"circle_id,omitempty"`
	CreatedBy        ShortUser `json:"created_by"`
	ImageURL         string    `json:"image_url"`
	PostCount        int64     `json:"post_count"`
	LatestPostAt     string    `json:"latest_post_at,omitempty"`
	BestAnswerPostID string    `json:"best_answer_post_id,omitempty"`
	CreatedAt        string    `json:"created_at"`
}

type Post struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"board_id"`
	Author      ShortUser `json:"author"`
	Text        string    `json:"text"`
	ImageURL    string    `json:"image_url"`
	ThanksCount int64     `json:"thanks_count"`
	CreatedAt   string    `json:"created_at"`
}

type Circle struct {
	ID              string    `json:"id"`
	UniversityID    string    `json:"university_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Schedule        string    `json:"schedule"`
	CreatedBy       ShortUser `json:"created_by"`
	ImageURL        string    `json:"image_url"`
	MemberCount     int64     `json:"member_count"`
	QuestionBoardID string    `json:"question_board_id,omitempty"`
	IsMember        bool      `json:"is_member"`
	CreatedAt       string    `json:"created_at"`
}

type Chat struct {
	ID              string    `json:"id"`
	Peer            ShortUser `json:"peer"`
	LastMessageID   int64     `json:"last_message_id,string"`
	LastMessageText string    `json:"last_message_text"`
	LastSenderID    string    `json:"last_sender_id"`
	LastMessageAt   string    `json:"last_message_at,omitempty"`
	HasUnread       bool      `json:"has_unread"`
}

type ChatMessage struct {
	ID        int64  `json:"id,string"`
	ChatID    string `json:"chat_id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	ActorID   string `json:"actor_id"`
	RefID     string `json:"ref_id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type PointHistory struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Points    int64  `json:"points"`
	RefID     string `json:"ref_id"`
	CreatedAt string `json:"created_at"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserStatistic struct {
	User        ShortUser `json:"user"`
	Value       int64     `json:"value"`
	CurrentRank int       `json:"current_rank"`
}
