package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminPost is an announcement written by an admin. Independent of the
// inventory workflows; deletion is permitted to the author or a superadmin.
type AdminPost struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"admin_id"`
	Admin     *User            `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"admin,omitempty"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Content   string           `gorm:"type:text;not null" json:"content"`
	Photo     string           `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Replies   []AdminPostReply `gorm:"foreignKey:PostID" json:"replies,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

func (p *AdminPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AdminPostReply is a reply under an announcement.
type AdminPostReply struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Photo     string    `gorm:"type:varchar(255)" json:"photo,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *AdminPostReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
