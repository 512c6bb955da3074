package activitylog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	domainActivity "github.com/studibuch/riona/domains/activity"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Log persists activity records in a local sqlite database. Record is
// fire-and-forget: failures are logged, never returned, so auditing can
// never break a mutation that already succeeded.
type Log struct {
	db *gorm.DB
}

func New(storagesDir string) (*Log, error) {
	if err := os.MkdirAll(storagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storages dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", filepath.Join(storagesDir, "activities.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open activities db: %w", err)
	}
	if err := db.AutoMigrate(&domainActivity.Activity{}); err != nil {
		return nil, fmt.Errorf("migrate activities db: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Record(kind, description string) {
	entry := domainActivity.Activity{
		Kind:        kind,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := l.db.Create(&entry).Error; err != nil {
		logrus.WithError(err).Errorf("[ACTIVITY] failed to record %s", kind)
		return
	}
	logrus.Debugf("[ACTIVITY] %s - %s", kind, description)
}

func (l *Log) List(ctx context.Context) ([]domainActivity.Activity, error) {
	var activities []domainActivity.Activity
	err := l.db.WithContext(ctx).Order("created_at desc").Find(&activities).Error
	return activities, err
}

func (l *Log) ListByKind(ctx context.Context, kind string) ([]domainActivity.Activity, error) {
	var activities []domainActivity.Activity
	err := l.db.WithContext(ctx).Where("kind = ?", kind).Order("created_at desc").Find(&activities).Error
	return activities, err
}
