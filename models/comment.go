package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment always references an existing news item and author. ParentID
// links a reply to another comment on the same article.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Content   string              `bson:"content" json:"content"`
	Author    primitive.ObjectID  `bson:"author" json:"author"`
	NewsID    primitive.ObjectID  `bson:"newsId" json:"newsId"`
	Upvotes   int64               `bson:"upvotes" json:"upvotes"`
	Downvotes int64               `bson:"downvotes" json:"downvotes"`
	ParentID  *primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
