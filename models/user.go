package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultAvatar = "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=150"

const DefaultCredibilityScore = 50

// Roles for the flat two-tier access model.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type UserLocation struct {
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Country string `bson:"country" json:"country"`
}

// User is the identity record. The password hash never serializes to JSON.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username         string             `bson:"username" json:"username" validate:"required,min=3"`
	Email            string             `bson:"email" json:"email" validate:"required,email"`
	Password         string             `bson:"password" json:"-"`
	Avatar           string             `bson:"avatar" json:"avatar"`
	Bio              string             `bson:"bio" json:"bio"`
	CredibilityScore int                `bson:"credibilityScore" json:"credibilityScore"`
	JoinedDate       time.Time          `bson:"joinedDate" json:"joinedDate"`
	Location         UserLocation       `bson:"location" json:"location"`
	FollowersCount   int                `bson:"followersCount" json:"followersCount"`
	FollowingCount   int                `bson:"followingCount" json:"followingCount"`
	Role             string             `bson:"role" json:"role"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthorSummary is the author projection embedded in news list responses.
type AuthorSummary struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Username         string             `bson:"username" json:"username"`
	Avatar           string             `bson:"avatar" json:"avatar"`
	CredibilityScore int                `bson:"credibilityScore" json:"credibilityScore"`
}

// AuthorProfile is the fuller projection used on the news detail page.
type AuthorProfile struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Username         string             `bson:"username" json:"username"`
	Avatar           string             `bson:"avatar" json:"avatar"`
	Bio              string             `bson:"bio" json:"bio"`
	CredibilityScore int                `bson:"credibilityScore" json:"credibilityScore"`
	JoinedDate       time.Time          `bson:"joinedDate" json:"joinedDate"`
	Location         UserLocation       `bson:"location" json:"location"`
	FollowersCount   int                `bson:"followersCount" json:"followersCount"`
	FollowingCount   int                `bson:"followingCount" json:"followingCount"`
}
