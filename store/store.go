package store

import (
	"context"
	"errors"

	"megaexe/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound        = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("not the owner of this post")
	ErrEmailTaken      = errors.New("email address already registered")
)

// UserStore persists user records keyed by a unique email address.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
}

// PostStore owns the post aggregate: a post document together with its
// embedded comments and their replies. Votes and appends must be atomic at
// the document level; only Edit is read-then-write (last write wins).
type PostStore interface {
	ListAll(ctx context.Context) ([]models.Post, error)
	ListSorted(ctx context.Context, sortBy string) ([]models.Post, error)
	GetByID(ctx context.Context, postID primitive.ObjectID) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Edit(ctx context.Context, postID, editorID primitive.ObjectID, content, category *string) (*models.Post, error)
	Delete(ctx context.Context, postID, editorID primitive.ObjectID) error
	Upvote(ctx context.Context, postID primitive.ObjectID) error
	Downvote(ctx context.Context, postID primitive.ObjectID) error
	AddComment(ctx context.Context, postID, authorID primitive.ObjectID, content string) (*models.Comment, error)
	AddReply(ctx context.Context, postID, commentID, authorID primitive.ObjectID, content string) (*models.Reply, error)
}

// SortByUpvotes is the only recognized sort criterion; anything else sorts
// by creation time, newest first.
const SortByUpvotes = "upvotes"
