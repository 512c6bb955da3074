package planstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	domainPlan "github.com/studibuch/riona/domains/plan"
	pkgError "github.com/studibuch/riona/pkg/error"
	"github.com/sirupsen/logrus"
)

// FileStore keeps the whole content plan in a single JSON file. A missing
// file is an empty plan; an unreadable or unparseable file is a
// StorageError. All mutations run under one mutex so concurrent
// load-modify-save cycles are serialized and cannot lose each other's
// writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "content_plan.json")}
}

func (s *FileStore) Load() (domainPlan.ContentPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *FileStore) loadLocked() (domainPlan.ContentPlan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domainPlan.ContentPlan{}, nil
		}
		return nil, pkgError.StorageError(fmt.Sprintf("read content plan: %v", err))
	}

	var plan domainPlan.ContentPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, pkgError.StorageError(fmt.Sprintf("parse content plan: %v", err))
	}
	return plan, nil
}

func (s *FileStore) Save(plan domainPlan.ContentPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(plan)
}

// saveLocked re-sorts and writes the plan through a temp file so a reader
// never observes a partial plan.
func (s *FileStore) saveLocked(plan domainPlan.ContentPlan) error {
	sort.SliceStable(plan, func(i, j int) bool {
		return plan[i].ScheduledAt.Before(plan[j].ScheduledAt)
	})

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return pkgError.StorageError(fmt.Sprintf("encode content plan: %v", err))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return pkgError.StorageError(fmt.Sprintf("create content dir: %v", err))
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return pkgError.StorageError(fmt.Sprintf("write content plan: %v", err))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return pkgError.StorageError(fmt.Sprintf("replace content plan: %v", err))
	}

	logrus.Debugf("[PLAN] saved content plan with %d posts", len(plan))
	return nil
}

func (s *FileStore) Update(fn func(domainPlan.ContentPlan) (domainPlan.ContentPlan, error)) (domainPlan.ContentPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	updated, err := fn(plan)
	if err != nil {
		return nil, err
	}
	if err := s.saveLocked(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *FileStore) UpsertByPostID(postID string, mutate func(*domainPlan.Post)) (domainPlan.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.loadLocked()
	if err != nil {
		return domainPlan.Post{}, err
	}

	idx := -1
	for i := range plan {
		if plan[i].ID == postID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domainPlan.Post{}, pkgError.NotFoundError(fmt.Sprintf("post %s not found", postID))
	}

	mutate(&plan[idx])
	post := plan[idx]

	if err := s.saveLocked(plan); err != nil {
		return domainPlan.Post{}, err
	}
	return post, nil
}
