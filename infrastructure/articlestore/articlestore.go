package articlestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domainArticle "github.com/studibuch/riona/domains/article"
	pkgError "github.com/studibuch/riona/pkg/error"
	"github.com/google/uuid"
)

// FileStore keeps the last scraped article set in a single JSON file so reel
// requests can resolve an article by id later.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "articles.json")}
}

// SaveAll replaces the stored set, assigning ids to articles that lack one.
func (s *FileStore) SaveAll(articles []domainArticle.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range articles {
		if articles[i].ID == "" {
			articles[i].ID = uuid.NewString()
		}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return pkgError.StorageError(fmt.Sprintf("encode articles: %v", err))
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return pkgError.StorageError(fmt.Sprintf("create articles dir: %v", err))
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return pkgError.StorageError(fmt.Sprintf("write articles: %v", err))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return pkgError.StorageError(fmt.Sprintf("replace articles: %v", err))
	}
	return nil
}

func (s *FileStore) List() ([]domainArticle.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) GetByID(id string) (domainArticle.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	articles, err := s.loadLocked()
	if err != nil {
		return domainArticle.Article{}, err
	}
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	return domainArticle.Article{}, pkgError.NotFoundError(fmt.Sprintf("article %s not found", id))
}

func (s *FileStore) loadLocked() ([]domainArticle.Article, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, pkgError.StorageError(fmt.Sprintf("read articles: %v", err))
	}
	var articles []domainArticle.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, pkgError.StorageError(fmt.Sprintf("parse articles: %v", err))
	}
	return articles, nil
}
