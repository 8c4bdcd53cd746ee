package model

type GetOrCreateChatRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type GetOrCreateChatResponse Chat

type GetChatsRequest struct{}

type GetChatsResponse struct {
	Chats []Chat `json:"chats"`
}

type SendMessageRequest struct {
	ChatID string `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required,max=2000"`
}

type SendMessageResponse ChatMessage

type GetMessagesRequest struct {
	ChatID   string `json:"chat_id" validate:"required"`
	BeforeID int64  `json:"before_id"`
	Limit    int    `json:"limit" validate:"min=0"`
}

type GetMessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}

type MarkChatReadRequest struct {
	ChatID string `json:"chat_id" validate:"required"`
}

type MarkChatReadResponse struct{}
