package models

// Follow is a directed edge in the follow graph: follower receives the
// followed user's messages. The pair acts as the natural key, so the same
// edge cannot exist twice.
type Follow struct {
	FollowerID uint `gorm:"primaryKey;column:follower_id"`
	FollowedID uint `gorm:"primaryKey;column:followed_id"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}
