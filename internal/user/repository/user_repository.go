package repository

import (
	"errors"
	"time"

	userdomain "vidtube-backend/internal/user/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// userRepository implements UserRepository on gorm/Postgres
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *userdomain.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*userdomain.User, error) {
	return r.findOne("id = ?", id)
}

func (r *userRepository) FindByUsername(username string) (*userdomain.User, error) {
	return r.findOne("username = ?", username)
}

func (r *userRepository) FindByUsernameOrEmail(username, email string) (*userdomain.User, error) {
	return r.findOne("username = ? OR email = ?", username, email)
}

func (r *userRepository) findOne(query string, args ...interface{}) (*userdomain.User, error) {
	var user userdomain.User
	err := r.db.Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateRefreshToken(userID, token string) error {
	return r.db.Model(&userdomain.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error
}

func (r *userRepository) RotateRefreshToken(userID, oldToken, newToken string) (bool, error) {
	// Compare-and-swap: the write lands only if the stored token still equals
	// the presented one, so concurrent rotations with a stale token lose.
	res := r.db.Model(&userdomain.User{}).
		Where("id = ? AND refresh_token = ?", userID, oldToken).
		Update("refresh_token", newToken)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) ClearRefreshToken(userID string) (bool, error) {
	res := r.db.Model(&userdomain.User{}).
		Where("id = ?", userID).
		Update("refresh_token", "")
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) UpdatePassword(userID, passwordHash string) error {
	return r.db.Model(&userdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"password": passwordHash, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdateAccountDetails(userID, fullName, email, username string) error {
	return r.db.Model(&userdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"full_name":  fullName,
			"email":      email,
			"username":   username,
			"updated_at": time.Now(),
		}).Error
}

func (r *userRepository) UpdateAvatar(userID, url string) error {
	return r.db.Model(&userdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"avatar_url": url, "updated_at": time.Now()}).Error
}

func (r *userRepository) UpdateCoverImage(userID, url string) error {
	return r.db.Model(&userdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"cover_image_url": url, "updated_at": time.Now()}).Error
}

func (r *userRepository) ChannelProfile(username, viewerID string) (*userdomain.ChannelProfile, error) {
	user, err := r.FindByUsername(username)
	if err != nil || user == nil {
		return nil, err
	}

	profile := &userdomain.ChannelProfile{
		ID:            user.ID,
		Username:      user.Username,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		CoverImageURL: user.CoverImageURL,
	}

	if err := r.db.Model(&userdomain.Subscription{}).
		Where("channel_id = ?", user.ID).
		Count(&profile.SubscriberCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&userdomain.Subscription{}).
		Where("subscriber_id = ?", user.ID).
		Count(&profile.SubscribedTo).Error; err != nil {
		return nil, err
	}

	if viewerID != "" {
		var n int64
		if err := r.db.Model(&userdomain.Subscription{}).
			Where("subscriber_id = ? AND channel_id = ?", viewerID, user.ID).
			Count(&n).Error; err != nil {
			return nil, err
		}
		profile.IsSubscribed = n > 0
	}

	return profile, nil
}

func (r *userRepository) ToggleSubscription(subscriberID, channelID string) (bool, error) {
	res := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&userdomain.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	sub := &userdomain.Subscription{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}
	if err := r.db.Create(sub).Error; err != nil {
		return false, err
	}
	return true, nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
