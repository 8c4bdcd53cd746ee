package search

import (
	"context"
	"errors"
	"path"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/campusboard/backend/pkg/logger"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

const (
	BoardDoc  = "boards"
	PostDoc   = "posts"
	CircleDoc = "circles"
)

type BoardData struct {
	Title       string
	Description string
}

type PostData struct {
	Text string
}

type CircleData struct {
	Name        string
	Description string
	Category    string
}

type Index interface {
	// Index adds or replaces the record id of document within university.
	Index(document, universityID, id string, data any) error
	Delete(document, universityID, id string) error

	// Search returns the ids of at most limit records matching query.
	Search(document, universityID, query string, limit int) ([]string, error)
	Close()
}

// bleveIndex keeps one index per document kind and university, so a search
// never needs to filter by tenant.
type bleveIndex struct {
	logger   logger.Logger
	indexDir string
	indexes  *xsync.MapOf[string, bleve.Index]

	// mutex serializes opening, two opens of one path would fail.
	mutex sync.Mutex
}

// NewBleveIndex stores indexes under SearchIndex.IndexDir, or in memory when
// it is empty.
func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:   xcontext.Logger(ctx),
		indexDir: xcontext.Configs(ctx).SearchIndex.IndexDir,
		indexes:  xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) Index(document, universityID, id string, data any) error {
	index, err := i.getIndex(document, universityID)
	if err != nil {
		return err
	}

	record, err := index.Document(id)
	if err != nil {
		return err
	}

	// Delete if the record existed.
	if record != nil {
		if err := index.Delete(id); err != nil {
			return err
		}
	}

	return index.Index(id, data)
}

func (i *bleveIndex) Delete(document, universityID, id string) error {
	index, err := i.getIndex(document, universityID)
	if err != nil {
		return err
	}

	return index.Delete(id)
}

func (i *bleveIndex) Search(document, universityID, query string, limit int) ([]string, error) {
	index, err := i.getIndex(document, universityID)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, match := range searchResults.Hits {
		ids = append(ids, match.ID)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing all indexers...")

	i.indexes.Range(func(name string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", name, err)
		}

		return true
	})

	i.logger.Infof("Closing all indexers...done")
}

func (i *bleveIndex) getIndex(document, universityID string) (bleve.Index, error) {
	name := path.Join(document, universityID)
	if index, ok := i.indexes.Load(name); ok {
		return index, nil
	}

	i.mutex.Lock()
	defer i.mutex.Unlock()

	// Double check.
	if index, ok := i.indexes.Load(name); ok {
		return index, nil
	}

	i.logger.Infof("A new document index is added: %s", name)
	index, err := i.open(name)
	if err != nil {
		return nil, err
	}

	i.indexes.Store(name, index)
	return index, nil
}

func (i *bleveIndex) open(name string) (bleve.Index, error) {
	if i.indexDir == "" {
		return bleve.NewMemOnly(bleve.NewIndexMapping())
	}

	indexPath := path.Join(i.indexDir, name)
	index, err := bleve.New(indexPath, bleve.NewIndexMapping())
	if err != nil {
		if !errors.Is(err, bleve.ErrorIndexPathExists) {
			return nil, err
		}

		return bleve.Open(indexPath)
	}

	return index, nil
}
