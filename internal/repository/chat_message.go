package repository

import (
	"context"
	"math"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/numberutil"
	"github.com/campusboard/backend/pkg/reflectutil"
	"github.com/scylladb/gocqlx/v2"
	"github.com/scylladb/gocqlx/v2/qb"
	"github.com/scylladb/gocqlx/v2/table"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, data *entity.ChatMessage) error

	// GetListByChatID returns up to limit messages older than beforeID, newest
	// first. Buckets older than sinceBucket are not visited. A zero beforeID
	// starts from the latest message.
	GetListByChatID(ctx context.Context, chatID string, beforeID, sinceBucket int64, limit int) ([]entity.ChatMessage, error)
}

type chatMessageRepository struct {
	session gocqlx.Session
	tbl     *table.Table
}

func NewChatMessageRepository(session gocqlx.Session) *chatMessageRepository {
	e := &entity.ChatMessage{}
	m := table.Metadata{
		Name:    e.TableName(),
		Columns: reflectutil.GetColumnNames(e),
		PartKey: []string{"chat_id", "bucket"},
		SortKey: []string{"id"},
	}

	return &chatMessageRepository{
		session: session,
		tbl:     table.New(m),
	}
}

func (r *chatMessageRepository) Create(ctx context.Context, data *entity.ChatMessage) error {
	if data.Bucket == 0 {
		data.Bucket = numberutil.BucketFrom(data.ID)
	}

	stmt, names := r.tbl.Insert()
	return r.session.Query(stmt, names).WithContext(ctx).BindStruct(data).ExecRelease()
}

func (r *chatMessageRepository) GetListByChatID(
	ctx context.Context, chatID string, beforeID, sinceBucket int64, limit int,
) ([]entity.ChatMessage, error) {
	before := beforeID
	if before == 0 {
		before = math.MaxInt64
	}

	metadata := r.tbl.Metadata()
	stmt, names := qb.Select(metadata.Name).
		Columns(metadata.Columns...).
		Where(qb.Eq("chat_id"), qb.Eq("bucket"), qb.Lt("id")).
		OrderBy("id", qb.DESC).
		Limit(uint(limit)).
		ToCql()

	result := []entity.ChatMessage{}
	for bucket := numberutil.BucketFrom(beforeID); bucket >= sinceBucket && len(result) < limit; bucket-- {
		var messages []entity.ChatMessage
		err := r.session.Query(stmt, names).
			WithContext(ctx).
			BindMap(qb.M{"chat_id": chatID, "bucket": bucket, "id": before}).
			SelectRelease(&messages)
		if err != nil {
			return nil, err
		}

		result = append(result, messages...)
	}

	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
