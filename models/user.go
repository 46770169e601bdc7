package models

// DefaultImageURL is used when a signup does not supply a profile image.
const DefaultImageURL = "/static/images/default-pic.png"

// User represents a user in the database
type User struct {
	ID       uint   `gorm:"primaryKey;column:user_id"`
	Username string `gorm:"uniqueIndex;size:255;not null"`
	Email    string `gorm:"uniqueIndex;size:255;not null"`
	PwHash   string `json:"-" gorm:"column:pw_hash;not null"`
	ImageURL string `gorm:"column:image_url"`
}

// TableName overrides the table name used by User to `users`
func (User) TableName() string {
	return "users"
}
