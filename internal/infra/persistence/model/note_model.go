package model

import (
	"time"

	"github.com/google/uuid"
)

// NoteModel mirrors the 'notes' table. UserID references users.id (UUID).
type NoteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NoteModel) TableName() string {
	return "notes"
}
