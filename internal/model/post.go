package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is an append-only entry inside a post document. Comments cannot be
// edited or deleted.
type Comment struct {
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Post represents a feed entry. Likes and comments are embedded in the post
// row as JSON columns, mirroring a document-store layout.
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:char(36);not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Likes     IDList    `json:"likes" gorm:"serializer:json"`
	Comments  []Comment `json:"comments" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostView is a post decorated with its author's public summary, as returned
// by the feed and per-author listings.
type PostView struct {
	Post
	Author *UserSummary `json:"author,omitempty"`
}
