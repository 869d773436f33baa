package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BorrowRequest status constants. Lifecycle:
// pending -> approved | rejected; approved/partial -> returned.
// A partial return keeps the row in "partial", which counts against item
// availability exactly like "approved"; only "returned" frees the quantity.
const (
	BorrowStatusPending  = "pending"
	BorrowStatusApproved = "approved"
	BorrowStatusRejected = "rejected"
	BorrowStatusPartial  = "partial"
	BorrowStatusReturned = "returned"
)

// BorrowRequest tracks one student request to borrow a quantity of an item.
// Quantity is fixed at creation; status and return date are the only fields
// mutated afterwards, and only by admin action.
type BorrowRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	Item        *Item      `gorm:"foreignKey:ItemID" json:"-"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	StudentID   string     `gorm:"type:varchar(50)" json:"student_id"`
	RequestDate time.Time  `gorm:"autoCreateTime;index" json:"request_date"`
	Status      string     `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	Purpose     string     `gorm:"type:text" json:"purpose,omitempty"`
}

func (b *BorrowRequest) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
