package models

import "time"

// SecureBlob is an encrypted payload stored by the SQL storage backend.
type SecureBlob struct {
	StorageKey string `gorm:"primaryKey;size:255"`
	Blob       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
