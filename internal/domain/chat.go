package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/campusboard/backend/internal/domain/notification"
	"github.com/campusboard/backend/internal/domain/notification/event"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/numberutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatDomain interface {
	GetOrCreate(context.Context, *model.GetOrCreateChatRequest) (*model.GetOrCreateChatResponse, error)
	GetList(context.Context, *model.GetChatsRequest) (*model.GetChatsResponse, error)
	SendMessage(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetMessages(context.Context, *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
	MarkRead(context.Context, *model.MarkChatReadRequest) (*model.MarkChatReadResponse, error)
}

type chatDomain struct {
	chatRepo        repository.ChatRepository
	chatMemberRepo  repository.ChatMemberRepository
	chatMessageRepo repository.ChatMessageRepository
	userRepo        repository.UserRepository
	emitter         notification.Emitter
}

func NewChatDomain(
	chatRepo repository.ChatRepository,
	chatMemberRepo repository.ChatMemberRepository,
	chatMessageRepo repository.ChatMessageRepository,
	userRepo repository.UserRepository,
	emitter notification.Emitter,
) *chatDomain {
	return &chatDomain{
		chatRepo:        chatRepo,
		chatMemberRepo:  chatMemberRepo,
		chatMessageRepo: chatMessageRepo,
		userRepo:        userRepo,
		emitter:         emitter,
	}
}

// GetOrCreate returns the only chat between the request user and the peer.
func (d *chatDomain) GetOrCreate(
	ctx context.Context, req *model.GetOrCreateChatRequest,
) (*model.GetOrCreateChatResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.UserID == userID {
		return nil, errorx.New(errorx.BadRequest, "Cannot chat with yourself")
	}

	peer, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get peer: %v", err)
		return nil, errorx.Unknown
	}

	key := entity.ChatParticipantKey(userID, peer.ID)
	var chat *entity.Chat
	err = xcontext.RunTransaction(ctx, func(ctx context.Context) error {
		var err error
		chat, err = d.chatRepo.GetByParticipantKey(ctx, key)
		if err == nil {
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		chat = &entity.Chat{Base: entity.Base{ID: uuid.NewString()}, ParticipantKey: key}
		if err := d.chatRepo.Create(ctx, chat); err != nil {
			return err
		}

		for _, id := range []string{userID, peer.ID} {
			if err := d.chatMemberRepo.Create(ctx, &entity.ChatMember{ChatID: chat.ID, UserID: id}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		// A concurrent request may have created the chat first.
		existing, getErr := d.chatRepo.GetByParticipantKey(ctx, key)
		if getErr != nil {
			return nil, transactionError(ctx, err, "Cannot create chat %s", key)
		}

		chat = existing
	}

	member, err := d.chatMemberRepo.Get(ctx, chat.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat member: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetOrCreateChatResponse(
		model.ConvertChat(chat, model.ConvertShortUser(peer), member.LastReadMessageID))
	return &resp, nil
}

func (d *chatDomain) GetList(ctx context.Context, req *model.GetChatsRequest) (*model.GetChatsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	chats, err := d.chatRepo.GetListByUserID(ctx, userID, 0, xcontext.Configs(ctx).ApiServer.MaxLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat list: %v", err)
		return nil, errorx.Unknown
	}

	members, err := d.chatMemberRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat memberships: %v", err)
		return nil, errorx.Unknown
	}

	lastRead := map[string]int64{}
	for _, m := range members {
		lastRead[m.ChatID] = m.LastReadMessageID
	}

	peerIDs := []string{}
	for _, c := range chats {
		peerIDs = append(peerIDs, chatPeer(&c, userID))
	}

	peers, err := getShortUsers(ctx, d.userRepo, peerIDs)
	if err != nil {
		return nil, err
	}

	result := []model.Chat{}
	for i := range chats {
		c := &chats[i]
		result = append(result, model.ConvertChat(c, peers[chatPeer(c, userID)], lastRead[c.ID]))
	}

	return &model.GetChatsResponse{Chats: result}, nil
}

func (d *chatDomain) SendMessage(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	chat, err := d.getParticipantChat(ctx, req.ChatID, user.ID)
	if err != nil {
		return nil, err
	}

	id := xcontext.SnowFlake(ctx).Generate().Int64()
	msg := entity.ChatMessage{
		ID:        id,
		ChatID:    chat.ID,
		Bucket:    numberutil.BucketFrom(id),
		UserID:    user.ID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if err := d.chatMessageRepo.Create(ctx, &msg); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.chatRepo.UpdateLastMessage(ctx, chat.ID, &msg); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last message of chat: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.chatMemberRepo.UpdateLastRead(ctx, chat.ID, user.ID, msg.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update read marker of sender: %v", err)
	}

	d.emitter.Emit(ctx, chatPeer(chat, user.ID), event.MessageEvent{
		ActorID:   user.ID,
		ActorName: user.Name,
		ChatID:    chat.ID,
		MessageID: strconv.FormatInt(msg.ID, 10),
		Text:      msg.Text,
	})

	resp := model.SendMessageResponse(model.ConvertChatMessage(&msg))
	return &resp, nil
}

func (d *chatDomain) GetMessages(
	ctx context.Context, req *model.GetMessagesRequest,
) (*model.GetMessagesResponse, error) {
	chat, err := d.getParticipantChat(ctx, req.ChatID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	messages, err := d.chatMessageRepo.GetListByChatID(
		ctx, chat.ID, req.BeforeID, numberutil.BucketOf(chat.CreatedAt), paginationLimit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.ChatMessage{}
	for i := range messages {
		result = append(result, model.ConvertChatMessage(&messages[i]))
	}

	return &model.GetMessagesResponse{Messages: result}, nil
}

func (d *chatDomain) MarkRead(ctx context.Context, req *model.MarkChatReadRequest) (*model.MarkChatReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	chat, err := d.getParticipantChat(ctx, req.ChatID, userID)
	if err != nil {
		return nil, err
	}

	if err := d.chatMemberRepo.UpdateLastRead(ctx, chat.ID, userID, chat.LastMessageID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update read marker: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkChatReadResponse{}, nil
}

// getParticipantChat returns the chat only when userID takes part in it.
func (d *chatDomain) getParticipantChat(ctx context.Context, chatID, userID string) (*entity.Chat, error) {
	chat, err := d.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found chat")
		}

		xcontext.Logger(ctx).Errorf("Cannot get chat: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.chatMemberRepo.Get(ctx, chat.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied, "You are not a participant of this chat")
		}

		xcontext.Logger(ctx).Errorf("Cannot get chat member: %v", err)
		return nil, errorx.Unknown
	}

	return chat, nil
}

func chatPeer(chat *entity.Chat, userID string) string {
	for _, id := range strings.Split(chat.ParticipantKey, ":") {
		if id != userID {
			return id
		}
	}

	return userID
}
