package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// News types.
const (
	TypeArticle = "article"
	TypeVideo   = "video"
)

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type NewsLocation struct {
	City        string       `bson:"city" json:"city"`
	State       string       `bson:"state" json:"state"`
	Country     string       `bson:"country" json:"country"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// News is the content record. Conditional rules (content/thumbnail for
// articles, videoUrl for videos) are enforced by ValidateNews.
type News struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,min=10"`
	Description string             `bson:"description" json:"description" validate:"required,min=20"`
	Content     string             `bson:"content" json:"content"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Type        string             `bson:"type" json:"type" validate:"required,oneof=article video"`
	VideoURL    string             `bson:"videoUrl" json:"videoUrl"`
	Location    NewsLocation       `bson:"location" json:"location"`
	Categories  []string           `bson:"categories" json:"categories" validate:"required,min=1"`
	Author      primitive.ObjectID `bson:"author" json:"author"`
	Upvotes     int64              `bson:"upvotes" json:"upvotes"`
	Downvotes   int64              `bson:"downvotes" json:"downvotes"`
	ViewCount   int64              `bson:"viewCount" json:"viewCount"`
	IsModerated bool               `bson:"isModerated" json:"isModerated"`
	Comments    int64              `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
