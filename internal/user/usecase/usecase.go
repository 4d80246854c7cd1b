package usecase

import (
	"context"

	userdomain "vidtube-backend/internal/user/domain"
	userdto "vidtube-backend/internal/user/dto"
)

// MediaUploader pushes a local temp file to the hosted media store and
// returns its durable URL. Implemented by pkg/media.Store.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// UserUsecase owns credentials and the access/refresh token pair lifecycle,
// plus the profile operations hanging off the user record.
type UserUsecase interface {
	Register(req *userdto.RegisterRequest, avatarPath, coverPath string) (*userdomain.User, error)
	Login(req *userdto.LoginRequest) (*userdto.LoginResponse, error)
	Refresh(presentedToken string) (*userdto.TokenPairResponse, error)
	Logout(userID string) error
	ChangePassword(userID string, req *userdto.ChangePasswordRequest) error

	CurrentUser(userID string) (*userdomain.User, error)
	UpdateAccount(userID string, req *userdto.UpdateAccountRequest) (*userdomain.User, error)
	UpdateAvatar(userID, localPath string) (*userdomain.User, error)
	UpdateCoverImage(userID, localPath string) (*userdomain.User, error)

	ChannelProfile(username, viewerID string) (*userdomain.ChannelProfile, error)
	ToggleSubscription(subscriberID, channelUsername string) (bool, error)

	// ValidateAccessToken verifies an access token and loads its user.
	// Used by the auth middleware.
	ValidateAccessToken(token string) (*userdomain.User, error)
}
