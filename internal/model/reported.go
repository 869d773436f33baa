package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportedItem status constants. The transition unclaimed -> claimed is
// monotonic and driven only by approving an associated claim request.
const (
	ReportedStatusUnclaimed = "unclaimed"
	ReportedStatusClaimed   = "claimed"
)

// ClaimRequest status constants.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// ReportedItem is a lost item logged for potential claiming, distinct from
// lendable inventory.
type ReportedItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Date          time.Time  `gorm:"type:date;not null" json:"date"`
	Location      string     `gorm:"type:varchar(255);not null" json:"location"`
	Photo         string     `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	Status        string     `gorm:"type:varchar(50);not null;default:'unclaimed';index" json:"status"`
	ClaimedByUser string     `gorm:"type:varchar(255)" json:"claimed_by_user,omitempty"`
	ClaimNotes    string     `gorm:"type:text" json:"claim_notes,omitempty"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"` // reporter
	Reporter      *User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ReportedItem) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ClaimRequest is a student's assertion of ownership over a reported item.
// Proof photo is mandatory. A user may hold at most one pending claim per
// item; approved/rejected claims for the same item may coexist.
type ClaimRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	Item            *ReportedItem `gorm:"foreignKey:ItemID" json:"-"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Username        string     `gorm:"type:varchar(255);not null" json:"username"`
	Status          string     `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	ClaimNotes      string     `gorm:"type:text" json:"claim_notes,omitempty"`
	Photo           string     `gorm:"type:varchar(255);not null" json:"photo"` // proof of ownership
	StudentID       string     `gorm:"type:varchar(50)" json:"student_id"`
	ApprovalAdminID *uuid.UUID `gorm:"type:uuid" json:"approval_admin_id,omitempty"`
	ApprovalAdmin   *User      `gorm:"foreignKey:ApprovalAdminID" json:"-"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *ClaimRequest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
