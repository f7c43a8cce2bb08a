package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Reply struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Content   string             `bson:"content" json:"content"`
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Content   string             `bson:"content" json:"content"`
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	Replies   []Reply            `bson:"replies" json:"replies"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	ImageURL  string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Content   string             `bson:"content,omitempty" json:"content"`
	Category  string             `bson:"category,omitempty" json:"category"`
	Upvotes   int64              `bson:"upvotes" json:"upvotes"`
	Downvotes int64              `bson:"downvotes" json:"downvotes"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	User      *Author            `bson:"-" json:"user,omitempty"` // Populated in response only
}

// ReplyView is a reply with its author reference resolved.
type ReplyView struct {
	ID        primitive.ObjectID `json:"id"`
	Content   string             `json:"content"`
	User      Author             `json:"user"`
	CreatedAt int64              `json:"createdAt"`
}

// CommentView is a comment with author references resolved for display.
type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	Content   string             `json:"content"`
	User      Author             `json:"user"`
	CreatedAt int64              `json:"createdAt"`
	Replies   []ReplyView        `json:"replies"`
}
