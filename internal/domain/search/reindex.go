package search

import (
	"context"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/xcontext"
)

const reindexPageSize = 500

// Reindex feeds every board, post and circle of the database into index. An
// in-memory index starts empty, and a persistent one may miss records
// written by other replicas.
func Reindex(
	ctx context.Context,
	index Index,
	boardRepo repository.BoardRepository,
	postRepo repository.PostRepository,
	circleRepo repository.CircleRepository,
) error {
	boards, err := reindexAll(ctx, boardRepo.GetPageAfter, func(b *entity.Board) error {
		return index.Index(BoardDoc, b.UniversityID, b.ID, BoardData{Title: b.Title, Description: b.Description})
	})
	if err != nil {
		return err
	}

	posts, err := reindexAll(ctx, postRepo.GetPageAfter, func(p *entity.Post) error {
		return index.Index(PostDoc, p.UniversityID, p.ID, PostData{Text: p.Text})
	})
	if err != nil {
		return err
	}

	circles, err := reindexAll(ctx, circleRepo.GetPageAfter, func(c *entity.Circle) error {
		return index.Index(CircleDoc, c.UniversityID, c.ID, CircleData{
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
		})
	})
	if err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Reindexed %d boards, %d posts and %d circles", boards, posts, circles)
	return nil
}

type identified interface {
	PrimaryKey() string
}

func reindexAll[T identified](
	ctx context.Context,
	page func(ctx context.Context, afterID string, limit int) ([]T, error),
	index func(*T) error,
) (int, error) {
	count := 0
	afterID := ""
	for {
		records, err := page(ctx, afterID, reindexPageSize)
		if err != nil {
			return count, err
		}

		for i := range records {
			if err := index(&records[i]); err != nil {
				return count, err
			}
		}

		count += len(records)
		if len(records) < reindexPageSize {
			return count, nil
		}

		afterID = records[len(records)-1].PrimaryKey()
	}
}
