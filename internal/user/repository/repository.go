package repository

import userdomain "vidtube-backend/internal/user/domain"

// UserRepository is the persistence boundary for user records. Lookups return
// (nil, nil) when no record matches.
//
// Token and password writes are partial column updates on purpose: a full
// save would re-trigger password hashing on every login/refresh.
type UserRepository interface {
	Create(user *userdomain.User) error
	FindByID(id string) (*userdomain.User, error)
	FindByUsername(username string) (*userdomain.User, error)
	FindByUsernameOrEmail(username, email string) (*userdomain.User, error)

	// UpdateRefreshToken stores token unconditionally (login / initial issue).
	UpdateRefreshToken(userID, token string) error
	// RotateRefreshToken swaps oldToken for newToken only if oldToken is
	// still the stored value. Returns false when the compare failed
	// (rotated away or cleared).
	RotateRefreshToken(userID, oldToken, newToken string) (bool, error)
	// ClearRefreshToken empties the stored token. Returns false when no
	// record with userID exists.
	ClearRefreshToken(userID string) (bool, error)

	UpdatePassword(userID, passwordHash string) error
	UpdateAccountDetails(userID, fullName, email, username string) error
	UpdateAvatar(userID, url string) error
	UpdateCoverImage(userID, url string) error

	ChannelProfile(username, viewerID string) (*userdomain.ChannelProfile, error)
	// ToggleSubscription flips the subscriber→channel relation and reports
	// whether the subscription exists afterwards.
	ToggleSubscription(subscriberID, channelID string) (bool, error)
}
