package domain

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/internal/domain/search"
	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/model"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/dateutil"
	"github.com/campusboard/backend/pkg/errorx"
	"github.com/campusboard/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// searchCandidateLimit bounds both the prefix scan and the full-text hits of
// one kind.
const searchCandidateLimit = 100

type SearchDomain interface {
	Search(context.Context, *model.SearchRequest) (*model.SearchResponse, error)
}

type searchDomain struct {
	boardRepo        repository.BoardRepository
	postRepo         repository.PostRepository
	circleRepo       repository.CircleRepository
	circleMemberRepo repository.CircleMemberRepository
	userRepo         repository.UserRepository
	searchIndex      search.Index
}

func NewSearchDomain(
	boardRepo repository.BoardRepository,
	postRepo repository.PostRepository,
	circleRepo repository.CircleRepository,
	circleMemberRepo repository.CircleMemberRepository,
	userRepo repository.UserRepository,
	searchIndex search.Index,
) *searchDomain {
	return &searchDomain{
		boardRepo:        boardRepo,
		postRepo:         postRepo,
		circleRepo:       circleRepo,
		circleMemberRepo: circleMemberRepo,
		userRepo:         userRepo,
		searchIndex:      searchIndex,
	}
}

// Search returns the boards, posts and circles of the request user's
// university whose title, text or name contains the keyword, ignoring case.
func (d *searchDomain) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, errorx.New(errorx.BadRequest, "Keyword is required")
	}

	user, err := getRequestUser(ctx, d.userRepo)
	if err != nil {
		return nil, err
	}

	var boards []entity.Board
	var posts []entity.Post
	var circles []entity.Circle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		boards, err = d.searchBoards(gctx, user.UniversityID, keyword)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = d.searchPosts(gctx, user.UniversityID, keyword)
		return err
	})
	g.Go(func() error {
		var err error
		circles, err = d.searchCircles(gctx, user.UniversityID, keyword)
		return err
	})
	if err := g.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search %q: %v", keyword, err)
		return nil, errorx.Unknown
	}

	boards = filterBoards(boards, req, time.Now())

	boardResult, err := convertBoards(ctx, d.userRepo, boards)
	if err != nil {
		return nil, err
	}

	postResult, err := convertPosts(ctx, d.userRepo, posts)
	if err != nil {
		return nil, err
	}

	circleResult, err := convertCircles(ctx, d.userRepo, d.circleMemberRepo, user.ID, circles)
	if err != nil {
		return nil, err
	}

	return &model.SearchResponse{
		Boards:  boardResult,
		Posts:   postResult,
		Circles: circleResult,
	}, nil
}

func (d *searchDomain) searchBoards(ctx context.Context, universityID, keyword string) ([]entity.Board, error) {
	candidates, err := d.boardRepo.SearchByPrefix(ctx, universityID, keyword, searchCandidateLimit)
	if err != nil {
		return nil, err
	}

	knownIDs := make([]string, 0, len(candidates))
	for _, b := range candidates {
		knownIDs = append(knownIDs, b.ID)
	}

	missing := d.fullTextMisses(ctx, search.BoardDoc, universityID, keyword, knownIDs)
	extra, err := d.boardRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	result := []entity.Board{}
	for _, b := range append(candidates, extra...) {
		if b.UniversityID == universityID && common.ContainsFold(b.Title, keyword) {
			result = append(result, b)
		}
	}

	return result, nil
}

func (d *searchDomain) searchPosts(ctx context.Context, universityID, keyword string) ([]entity.Post, error) {
	candidates, err := d.postRepo.SearchByPrefix(ctx, universityID, keyword, searchCandidateLimit)
	if err != nil {
		return nil, err
	}

	knownIDs := make([]string, 0, len(candidates))
	for _, p := range candidates {
		knownIDs = append(knownIDs, p.ID)
	}

	missing := d.fullTextMisses(ctx, search.PostDoc, universityID, keyword, knownIDs)
	extra, err := d.postRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	result := []entity.Post{}
	for _, p := range append(candidates, extra...) {
		if p.UniversityID == universityID && common.ContainsFold(p.Text, keyword) {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (d *searchDomain) searchCircles(ctx context.Context, universityID, keyword string) ([]entity.Circle, error) {
	candidates, err := d.circleRepo.SearchByPrefix(ctx, universityID, keyword, searchCandidateLimit)
	if err != nil {
		return nil, err
	}

	knownIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		knownIDs = append(knownIDs, c.ID)
	}

	missing := d.fullTextMisses(ctx, search.CircleDoc, universityID, keyword, knownIDs)
	extra, err := d.circleRepo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	result := []entity.Circle{}
	for _, c := range append(candidates, extra...) {
		if c.UniversityID == universityID && common.ContainsFold(c.Name, keyword) {
			result = append(result, c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].MemberCount > result[j].MemberCount })
	return result, nil
}

// fullTextMisses returns the full-text hits which the prefix scan did not
// find. A failing index only narrows the result to the prefix scan.
func (d *searchDomain) fullTextMisses(
	ctx context.Context, document, universityID, keyword string, knownIDs []string,
) []string {
	hits, err := d.searchIndex.Search(document, universityID, keyword, searchCandidateLimit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot search %s index: %v", document, err)
		return nil
	}

	seen := map[string]bool{}
	for _, id := range knownIDs {
		seen[id] = true
	}

	missing := []string{}
	for _, id := range hits {
		if !seen[id] {
			missing = append(missing, id)
		}
	}

	return missing
}

func filterBoards(boards []entity.Board, req *model.SearchRequest, now time.Time) []entity.Board {
	var since time.Time
	switch req.Period {
	case "week":
		since = dateutil.DaysAgo(now, 7)
	case "month":
		since = dateutil.DaysAgo(now, 30)
	}

	result := []entity.Board{}
	for _, b := range boards {
		if !since.IsZero() && b.CreatedAt.Before(since) {
			continue
		}

		if req.HasBestAnswer && !b.BestAnswerPostID.Valid {
			continue
		}

		result = append(result, b)
	}

	var less func(a, b entity.Board) bool
	switch req.Sort {
	case "post_count":
		less = func(a, b entity.Board) bool { return a.PostCount > b.PostCount }
	case "latest_activity":
		less = func(a, b entity.Board) bool { return lastActivity(a).After(lastActivity(b)) }
	default:
		less = func(a, b entity.Board) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func lastActivity(b entity.Board) time.Time {
	if b.LatestPostAt.Valid {
		return b.LatestPostAt.Time
	}

	return b.CreatedAt
}
