package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDList is a set of user identifiers stored as a JSON column.
type IDList []uuid.UUID

// Contains reports whether id is present in the list.
func (l IDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with every occurrence of id removed.
func (l IDList) Without(id uuid.UUID) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// User represents a registered account with its follow graph.
// Follower and following sets live on the user document itself, so follow
// mutations are whole-row read-modify-write operations.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Bio          string    `json:"bio" gorm:"size:1024"`
	Avatar       string    `json:"avatar" gorm:"size:2048"`
	Followers    IDList    `json:"followers" gorm:"serializer:json"`
	Following    IDList    `json:"following" gorm:"serializer:json"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSummary is the public projection of a user used in auth responses and
// for decorating posts with their author.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Bio      string    `json:"bio,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
}

// Summary builds the public projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
	}
}
