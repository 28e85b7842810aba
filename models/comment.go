package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrReplyDepth is returned when a comment is created under a parent that
// itself already has a parent. Threads are capped at roots plus direct
// replies, and the cap is enforced here at the data layer so deep chains
// cannot accumulate through any write path.
var ErrReplyDepth = errors.New("replies to replies are not allowed")

type Comment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      *string   `gorm:"index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:SET NULL" json:"user,omitempty"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	ParentID    *uint     `gorm:"index" json:"parent_id"`
	Children    []Comment `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Description string    `gorm:"not null" json:"description"`
	Date        time.Time `gorm:"autoCreateTime" json:"date"` // immutable, set once on create
}

// IsRoot reports whether the comment is a top-level comment.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ParentID == nil {
		return nil
	}
	var parent Comment
	if err := tx.Select("id", "parent_id").First(&parent, *c.ParentID).Error; err != nil {
		return err
	}
	if parent.ParentID != nil {
		return ErrReplyDepth
	}
	return nil
}
