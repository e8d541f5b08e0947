package models

import "time"

// Tweet is an immutable short post owned by one user.
type Tweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"not null"`
	TweetedBy uint      `json:"tweetedBy" gorm:"not null;index"`
	TweetedAt time.Time `json:"tweetedAt" gorm:"not null"`
	Author    *User     `json:"-" gorm:"foreignKey:TweetedBy;constraint:OnDelete:CASCADE"`
}

type CreateTweetRequest struct {
	Text string `json:"text" validate:"required,max=280"`
}
