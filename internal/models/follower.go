package models

import "time"

// Follower is a directed edge: FollowerID follows UserID.
// Duplicate edges are allowed.
type Follower struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null"`
	FollowerID uint      `json:"followerId" gorm:"not null;index"`
	FollowedAt time.Time `json:"followedAt" gorm:"not null"`
	Target     *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Subscriber *User     `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
}

// Models lists every table the schema migration manages, parents first.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Tweet{},
		&Follower{},
	}
}
