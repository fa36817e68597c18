package blog

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultCoverImageURL is used when a post is created without an upload.
const DefaultCoverImageURL = "/images/default.avif"

// Blog is a published post.
type Blog struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string        `bson:"title" json:"title"`
	Body          string        `bson:"body" json:"body"`
	CoverImageURL string        `bson:"coverImageUrl,omitempty" json:"coverImageUrl,omitempty"`
	CreatedBy     bson.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// WithAuthor pairs a post with its author's display name for responses and
// prompt context. The name falls back to "Anonymous" for deleted accounts.
type WithAuthor struct {
	Blog       `bson:",inline"`
	AuthorName string `bson:"authorName" json:"authorName"`
}
