package domain

import "time"

type User struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex"` // stored lowercase
	Email         string    `json:"email" gorm:"uniqueIndex"`
	FullName      string    `json:"fullName"`
	Password      string    `json:"-"` // bcrypt hash, never serialized
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	RefreshToken  string    `json:"-"` // at most one live refresh token per user
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Subscription records that Subscriber follows Channel. Channel profile
// counts are derived from this relation at read time.
type Subscription struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SubscriberID string    `json:"subscriberId" gorm:"index;uniqueIndex:idx_sub_channel"`
	ChannelID    string    `json:"channelId" gorm:"index;uniqueIndex:idx_sub_channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelProfile is the read-time aggregation of a user viewed as a channel.
type ChannelProfile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"fullName"`
	AvatarURL       string `json:"avatar"`
	CoverImageURL   string `json:"coverImage,omitempty"`
	SubscriberCount int64  `json:"subscriberCount"`
	SubscribedTo    int64  `json:"channelsSubscribedTo"`
	IsSubscribed    bool   `json:"isSubscribed"`
}
