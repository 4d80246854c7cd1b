package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	userdomain "vidtube-backend/internal/user/domain"
	userdto "vidtube-backend/internal/user/dto"
	"vidtube-backend/internal/user/repository"
	"vidtube-backend/pkg/apierror"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/media"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessClaims are the short-lived access token claims. Subject carries the
// user id.
type AccessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// RefreshClaims carry only the user id; the refresh token is matched against
// the stored value on rotation, so nothing else belongs in it.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// userUsecase implements UserUsecase
type userUsecase struct {
	userRepo repository.UserRepository
	uploader MediaUploader
	config   *config.Config
}

func NewUserUsecase(userRepo repository.UserRepository, uploader MediaUploader, cfg *config.Config) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		uploader: uploader,
		config:   cfg,
	}
}

func (u *userUsecase) Register(req *userdto.RegisterRequest, avatarPath, coverPath string) (*userdomain.User, error) {
	existing, err := u.userRepo.FindByUsernameOrEmail(strings.ToLower(req.Username), req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("username or email is already in use")
	}

	avatarURL, err := u.uploader.Upload(context.Background(), avatarPath)
	if err != nil {
		if errors.Is(err, media.ErrNoFile) {
			return nil, apierror.BadRequest("avatar file is required")
		}
		return nil, apierror.Internal("failed to upload avatar")
	}

	// Cover image is optional and best-effort; a failed upload does not
	// block registration.
	coverURL := ""
	if coverPath != "" {
		coverURL, err = u.uploader.Upload(context.Background(), coverPath)
		if err != nil {
			log.Warn("cover image upload failed", "err", err)
			coverURL = ""
		}
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &userdomain.User{
		Username:      strings.ToLower(req.Username),
		Email:         req.Email,
		FullName:      req.FullName,
		Password:      hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	}

	if err := u.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("username or email is already in use")
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) Login(req *userdto.LoginRequest) (*userdto.LoginResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, apierror.BadRequest("username or email is required")
	}

	user, err := u.userRepo.FindByUsernameOrEmail(strings.ToLower(req.Username), req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierror.NotFound("user does not exist")
	}

	// Generic message on purpose: never reveal which part was wrong.
	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apierror.Unauthorized("invalid user credentials")
	}

	accessToken, refreshToken, err := u.issueTokens(user)
	if err != nil {
		return nil, err
	}

	return &userdto.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *userUsecase) Refresh(presentedToken string) (*userdto.TokenPairResponse, error) {
	if presentedToken == "" {
		return nil, apierror.Unauthorized("refresh token is required")
	}

	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(presentedToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(u.config.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Unauthorized("invalid or expired refresh token")
	}

	user, err := u.userRepo.FindByID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierror.Unauthorized("invalid refresh token")
	}

	if user.RefreshToken != presentedToken {
		return nil, apierror.Unauthorized("refresh token is expired or already used")
	}

	accessToken, err := u.signAccessToken(user)
	if err != nil {
		return nil, apierror.Internal("something went wrong while generating tokens")
	}
	newRefreshToken, err := u.signRefreshToken(user)
	if err != nil {
		return nil, apierror.Internal("something went wrong while generating tokens")
	}

	// Compare-and-swap rotation: if a concurrent refresh already rotated the
	// stored value, this write misses and the presented token is dead.
	ok, err := u.userRepo.RotateRefreshToken(user.ID, presentedToken, newRefreshToken)
	if err != nil {
		return nil, apierror.Internal("something went wrong while generating tokens")
	}
	if !ok {
		return nil, apierror.Unauthorized("refresh token is expired or already used")
	}

	return &userdto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (u *userUsecase) Logout(userID string) error {
	ok, err := u.userRepo.ClearRefreshToken(userID)
	if err != nil {
		return err
	}
	if !ok {
		return apierror.NotFound("user does not exist")
	}
	return nil
}

func (u *userUsecase) ChangePassword(userID string, req *userdto.ChangePasswordRequest) error {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apierror.NotFound("user does not exist")
	}

	if !repository.CheckPasswordHash(req.OldPassword, user.Password) {
		return apierror.Unauthorized("old password is incorrect")
	}

	hash, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(userID, hash)
}

func (u *userUsecase) CurrentUser(userID string) (*userdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierror.NotFound("user does not exist")
	}
	return user, nil
}

func (u *userUsecase) UpdateAccount(userID string, req *userdto.UpdateAccountRequest) (*userdomain.User, error) {
	err := u.userRepo.UpdateAccountDetails(userID, req.FullName, req.Email, strings.ToLower(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("username or email is already in use")
		}
		return nil, err
	}
	return u.CurrentUser(userID)
}

func (u *userUsecase) UpdateAvatar(userID, localPath string) (*userdomain.User, error) {
	url, err := u.uploader.Upload(context.Background(), localPath)
	if err != nil {
		if errors.Is(err, media.ErrNoFile) {
			return nil, apierror.BadRequest("avatar file is required")
		}
		return nil, apierror.Internal("failed to upload avatar")
	}
	if err := u.userRepo.UpdateAvatar(userID, url); err != nil {
		return nil, err
	}
	return u.CurrentUser(userID)
}

func (u *userUsecase) UpdateCoverImage(userID, localPath string) (*userdomain.User, error) {
	url, err := u.uploader.Upload(context.Background(), localPath)
	if err != nil {
		if errors.Is(err, media.ErrNoFile) {
			return nil, apierror.BadRequest("cover image file is required")
		}
		return nil, apierror.Internal("failed to upload cover image")
	}
	if err := u.userRepo.UpdateCoverImage(userID, url); err != nil {
		return nil, err
	}
	return u.CurrentUser(userID)
}

func (u *userUsecase) ChannelProfile(username, viewerID string) (*userdomain.ChannelProfile, error) {
	profile, err := u.userRepo.ChannelProfile(strings.ToLower(username), viewerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apierror.NotFound("channel does not exist")
	}
	return profile, nil
}

func (u *userUsecase) ToggleSubscription(subscriberID, channelUsername string) (bool, error) {
	channel, err := u.userRepo.FindByUsername(strings.ToLower(channelUsername))
	if err != nil {
		return false, err
	}
	if channel == nil {
		return false, apierror.NotFound("channel does not exist")
	}
	if channel.ID == subscriberID {
		return false, apierror.BadRequest("cannot subscribe to your own channel")
	}
	return u.userRepo.ToggleSubscription(subscriberID, channel.ID)
}

func (u *userUsecase) ValidateAccessToken(tokenString string) (*userdomain.User, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(u.config.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Unauthorized("invalid or expired access token")
	}

	user, err := u.userRepo.FindByID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierror.Unauthorized("invalid access token")
	}

	return user, nil
}

// issueTokens signs a fresh access/refresh pair and persists the refresh
// token onto the user record (partial write, see UserRepository).
func (u *userUsecase) issueTokens(user *userdomain.User) (string, string, error) {
	accessToken, err := u.signAccessToken(user)
	if err != nil {
		return "", "", apierror.Internal("something went wrong while generating tokens")
	}

	refreshToken, err := u.signRefreshToken(user)
	if err != nil {
		return "", "", apierror.Internal("something went wrong while generating tokens")
	}

	if err := u.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return "", "", apierror.Internal("something went wrong while generating tokens")
	}
	user.RefreshToken = refreshToken

	return accessToken, refreshToken, nil
}

func (u *userUsecase) signAccessToken(user *userdomain.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.config.AccessExpiry)),
		},
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.AccessSecret))
}

func (u *userUsecase) signRefreshToken(user *userdomain.User) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		// The jti makes every signed token unique, so rotation always
		// produces a value distinct from the one it replaces.
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.config.RefreshExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.RefreshSecret))
}
