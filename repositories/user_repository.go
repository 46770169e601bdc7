package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ekhol/warbler/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Signup hashes the password and persists a new user. The stored hash is
// never the plaintext password.
func (r *userRepository) Signup(username, email, password, imageURL string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username: username,
		Email:    email,
		PwHash:   string(hash),
		ImageURL: imageURL,
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when the username exists and the password
// matches its stored hash, ErrNotFound otherwise.
func (r *userRepository) Authenticate(username, password string) (*models.User, error) {
	user, err := r.ByUsername(username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PwHash), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (r *userRepository) ByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// escapeLike quotes LIKE metacharacters so query text matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// Search returns users whose username contains the query as a
// case-insensitive literal substring. An empty query returns all users.
func (r *userRepository) Search(query string) ([]models.User, error) {
	var users []models.User
	tx := r.db.Order("username")
	if query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		tx = tx.Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern)
	}
	err := tx.Find(&users).Error
	return users, err
}

// Follow inserts a follow edge. Inserting the same edge twice returns
// ErrDuplicate; the pair columns form the natural key.
func (r *userRepository) Follow(followerID, followedID uint) error {
	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	err := r.db.Create(&edge).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// Unfollow removes the edge if present, and is a no-op otherwise.
func (r *userRepository) Unfollow(followerID, followedID uint) error {
	return r.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (r *userRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) IsFollowedBy(userID, otherID uint) (bool, error) {
	return r.IsFollowing(otherID, userID)
}

// Following returns the users that userID follows
func (r *userRepository) Following(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("INNER JOIN follows ON follows.followed_id = users.user_id").
		Where("follows.follower_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// Followers returns the users following userID
func (r *userRepository) Followers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("INNER JOIN follows ON follows.follower_id = users.user_id").
		Where("follows.followed_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

func (r *userRepository) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *userRepository) FollowerCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

// Like records an endorsement. Re-liking an already-liked message is a no-op,
// never a second row.
func (r *userRepository) Like(userID, messageID uint) error {
	like := models.Like{UserID: userID, MessageID: messageID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

func (r *userRepository) Unlike(userID, messageID uint) error {
	return r.db.
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
}

func (r *userRepository) HasLiked(userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

// Likes returns the messages userID has liked
func (r *userRepository) Likes(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Joins("INNER JOIN likes ON likes.message_id = messages.message_id").
		Where("likes.user_id = ?", userID).
		Order("messages.pub_date DESC").
		Find(&messages).Error
	return messages, err
}
