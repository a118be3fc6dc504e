package store

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"core-nexus/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the persistence adapter for every collection the site keeps:
// vault resources, feedback, staff accounts, config values and stats
// snapshots. All callers go through it; nothing touches gorm directly.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at path, migrates the schema and
// seeds the vault on first run. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	// sqlite misbehaves under concurrent writers; one connection is
	// plenty at this data scale.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Resource{},
		&model.Feedback{},
		&model.StaffAccount{},
		&model.Config{},
		&model.StatsSnapshot{},
	); err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.seedVault(); err != nil {
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying handle for components that run their own
// queries (the stats collector).
func (s *Store) DB() *gorm.DB { return s.db }

// NewID returns a random 12-hex-char identifier. A collision fails the
// insert on the primary key instead of clobbering an existing record.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// --- Resources -------------------------------------------------------

// Resources returns the whole vault, newest first. Ties on created_at
// break on sqlite's rowid, which follows insertion order, so the list
// stays most-recently-added-first even within one timestamp tick.
func (s *Store) Resources() ([]model.Resource, error) {
	var resources []model.Resource
	err := s.db.Order("created_at DESC, rowid DESC").Find(&resources).Error
	return resources, err
}

func (s *Store) AddResource(r *model.Resource) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return s.db.Create(r).Error
}

func (s *Store) UpdateResource(r *model.Resource) error {
	var existing model.Resource
	if err := s.db.First(&existing, "id = ?", r.ID).Error; err != nil {
		return err
	}
	r.CreatedAt = existing.CreatedAt
	return s.db.Save(r).Error
}

// DeleteResource removes the record with the given id. Deleting an
// unknown id is a no-op.
func (s *Store) DeleteResource(id string) error {
	return s.db.Delete(&model.Resource{}, "id = ?", id).Error
}

// --- Feedback --------------------------------------------------------

func (s *Store) Feedback() ([]model.Feedback, error) {
	var feedback []model.Feedback
	err := s.db.Order("created_at DESC, rowid DESC").Find(&feedback).Error
	return feedback, err
}

func (s *Store) AddFeedback(f *model.Feedback) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return s.db.Create(f).Error
}

func (s *Store) DeleteFeedback(id string) error {
	return s.db.Delete(&model.Feedback{}, "id = ?", id).Error
}

// --- Staff accounts --------------------------------------------------

func (s *Store) StaffAccounts() ([]model.StaffAccount, error) {
	var accounts []model.StaffAccount
	err := s.db.Order("created_at ASC").Find(&accounts).Error
	return accounts, err
}

// StaffByUsername returns (nil, nil) when no account matches.
func (s *Store) StaffByUsername(username string) (*model.StaffAccount, error) {
	var account model.StaffAccount
	err := s.db.Where("username = ?", username).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Store) StaffByID(id string) (*model.StaffAccount, error) {
	var account model.StaffAccount
	err := s.db.First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Store) AddStaff(a *model.StaffAccount) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return s.db.Create(a).Error
}

// SaveStaff persists field changes on an existing account. The bcrypt
// hook only runs on create, so callers changing a password must hash it
// themselves (see auth.SetPassword).
func (s *Store) SaveStaff(a *model.StaffAccount) error {
	return s.db.Save(a).Error
}

func (s *Store) DeleteStaff(id string) error {
	return s.db.Delete(&model.StaffAccount{}, "id = ?", id).Error
}

// --- Config values ---------------------------------------------------

// ConfigValue returns "" when the key was never set.
func (s *Store) ConfigValue(key string) (string, error) {
	var config model.Config
	err := s.db.Where("key = ?", key).First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return config.Value, nil
}

func (s *Store) SetConfigValue(key, value string) error {
	return s.db.Model(&model.Config{}).Where("key = ?", key).
		Assign(model.Config{Key: key, Value: value}).
		FirstOrCreate(&model.Config{}).Error
}

// --- Stats -----------------------------------------------------------

func (s *Store) AddStatsSnapshot(snap *model.StatsSnapshot) error {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	return s.db.Create(snap).Error
}

// StatsHistory returns up to limit snapshots, newest first.
func (s *Store) StatsHistory(limit int) ([]model.StatsSnapshot, error) {
	var snaps []model.StatsSnapshot
	err := s.db.Order("timestamp DESC").Limit(limit).Find(&snaps).Error
	return snaps, err
}
