package user

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultProfileImageURL is used when signup carries no image upload.
const DefaultProfileImageURL = "/images/default.avif"

// User is a registered account. Password holds the bcrypt hash and never
// leaves the server.
type User struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName        string        `bson:"fullName" json:"fullName"`
	Email           string        `bson:"email" json:"email"`
	Password        string        `bson:"password" json:"-"`
	ProfileImageURL string        `bson:"profileImageUrl" json:"profileImageUrl"`
	Role            string        `bson:"role" json:"role"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
}
