package community

import (
	"time"

	"kalaconnect-backend/internal/domain/users"
)

// Post is one artisan-forum entry, tied to a geographic or skill-based
// cluster. Posts are independent of the craft lifecycle.
type Post struct {
	ID      string      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uint        `gorm:"not null;index" json:"user_id"`
	User    *users.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Cluster string      `gorm:"not null;index" json:"cluster"`
	Body    string      `gorm:"not null" json:"body"`
	Title   *string     `json:"title,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
