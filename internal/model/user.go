package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants. Role is mutated only through the superadmin approval flow.
const (
	RoleStudent      = "student"
	RolePendingAdmin = "pending_admin"
	RoleAdmin        = "admin"
	RoleSuperadmin   = "superadmin"
)

// User represents the central account entity. A registration that asks for
// the admin role is stored as pending_admin until a superadmin approves it.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // Omit password hash from JSON responses
	Role      string    `gorm:"type:varchar(50);not null;default:'student'" json:"role"`
	StudentID string    `gorm:"type:varchar(50)" json:"student_id,omitempty"`
	AdminRole string    `gorm:"type:varchar(100)" json:"admin_role,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Session records one issued login token for audit and revocation. The token
// carries the session id in its "sid" claim; a revoked session invalidates the
// token immediately, ahead of its expiry.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserAgent string     `gorm:"type:varchar(255)" json:"user_agent"`
	IP        string     `gorm:"type:varchar(64)" json:"ip"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
