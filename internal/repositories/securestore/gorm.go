package securestore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"payquick/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (c PostgresConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=disable"
}

// OpenPostgres connects GORM to PostgreSQL with a quiet logger and a
// bounded connection pool.
func OpenPostgres(cfg PostgresConfig) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	return db, nil
}

// GormBackend stores blobs in the secure_blobs table.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (g *GormBackend) Migrate() error {
	return g.db.AutoMigrate(&models.SecureBlob{})
}

func (g *GormBackend) Get(ctx context.Context, key string) (string, error) {
	var blob models.SecureBlob
	err := g.db.WithContext(ctx).Where("storage_key = ?", key).Take(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load blob: %w", err)
	}
	return blob.Blob, nil
}

func (g *GormBackend) Set(ctx context.Context, key, value string) error {
	blob := models.SecureBlob{StorageKey: key, Blob: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"blob", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("save blob: %w", err)
	}
	return nil
}

func (g *GormBackend) Delete(ctx context.Context, key string) error {
	err := g.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.SecureBlob{}).Error
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
