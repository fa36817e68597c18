package blog

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is a flat comment attached to a post.
type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string        `bson:"content" json:"content"`
	BlogID    bson.ObjectID `bson:"blogId" json:"blogId"`
	CreatedBy bson.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

// CommentWithAuthor is the response shape for comment listings.
type CommentWithAuthor struct {
	Comment    `bson:",inline"`
	AuthorName string `bson:"authorName" json:"authorName"`
}
