package repositories

import "github.com/Ekhol/warbler/models"

type UserRepository interface {
	Signup(username, email, password, imageURL string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	ByID(id uint) (*models.User, error)
	ByUsername(username string) (*models.User, error)
	Search(query string) ([]models.User, error)

	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	IsFollowing(followerID, followedID uint) (bool, error)
	IsFollowedBy(userID, otherID uint) (bool, error)
	Following(userID uint) ([]models.User, error)
	Followers(userID uint) ([]models.User, error)
	FollowingCount(userID uint) (int64, error)
	FollowerCount(userID uint) (int64, error)

	Like(userID, messageID uint) error
	Unlike(userID, messageID uint) error
	HasLiked(userID, messageID uint) (bool, error)
	Likes(userID uint) ([]models.Message, error)
}

type MessageRepository interface {
	Create(userID uint, text string) (*models.Message, error)
	ByID(id uint) (*models.Message, error)
	Delete(messageID, requestingUserID uint) error
	ByUser(userID uint) ([]models.Message, error)
	CountByUser(userID uint) (int64, error)
}
