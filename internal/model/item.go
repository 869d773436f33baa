package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known item statuses. The column itself is freeform (admins may set
// other values) but these are the ones the borrow rules care about.
const (
	ItemStatusAvailable   = "available"
	ItemStatusMaintenance = "maintenance"
	ItemStatusDamaged     = "damaged"
)

// Item is a unit of lendable inventory. Quantity is the registered total and
// is never decremented by borrowing: availability is always derived as
// quantity minus the sum over approved/partial borrow requests.
type Item struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Quantity    int        `gorm:"not null;default:1" json:"quantity"`
	Date        time.Time  `gorm:"type:date;not null" json:"date"`
	Location    string     `gorm:"type:varchar(255);not null" json:"location"`
	Photo       string     `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Status      string     `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	Creator     *User      `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
