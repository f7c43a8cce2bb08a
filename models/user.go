package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstname" json:"firstname"`
	LastName     string             `bson:"lastname" json:"lastname"`
	EmailAddress string             `bson:"emailAddress" json:"emailAddress"`
	PasswordHash string             `bson:"password" json:"-"`
	Picture      string             `bson:"picture,omitempty" json:"picture"`
	CreatedAt    int64              `bson:"createdAt" json:"createdAt"`
}

// DisplayName is the name shown next to posts, comments and replies.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Author is the display view of a user reference, resolved at read time.
type Author struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
