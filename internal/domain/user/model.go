package user

import "time"

// User owns reviews. Authentication is handled elsewhere; this is only the
// record reviews point at.
type User struct {
	ID         uint      `gorm:"primaryKey"`
	Username   string    `gorm:"size:150;not null;uniqueIndex"`
	Email      string    `gorm:"size:254;not null;default:''"`
	DateJoined time.Time `gorm:"autoCreateTime"`
}

func (u User) String() string {
	return u.Username
}
