package store

import (
	"context"
	"time"

	"megaexe/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPostStore struct {
	coll *mongo.Collection
}

func NewMongoPostStore(coll *mongo.Collection) *MongoPostStore {
	return &MongoPostStore{coll: coll}
}

func (s *MongoPostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) ListSorted(ctx context.Context, sortBy string) ([]models.Post, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	if sortBy == SortByUpvotes {
		sort = bson.D{{Key: "upvotes", Value: -1}}
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) GetByID(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt == 0 {
		post.CreatedAt = time.Now().Unix()
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}

	_, err := s.coll.InsertOne(ctx, post)
	return err
}

// Edit reads the post for the ownership check and then updates only the
// supplied fields. Concurrent edits to the same post are last-write-wins.
func (s *MongoPostStore) Edit(ctx context.Context, postID, editorID primitive.ObjectID, content, category *string) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != editorID {
		return nil, ErrForbidden
	}

	fields := bson.M{}
	if content != nil {
		fields["content"] = *content
		post.Content = *content
	}
	if category != nil {
		fields["category"] = *category
		post.Category = *category
	}
	if len(fields) == 0 {
		return post, nil
	}

	_, err = s.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$set": fields})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *MongoPostStore) Delete(ctx context.Context, postID, editorID primitive.ObjectID) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != editorID {
		return ErrForbidden
	}

	_, err = s.coll.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

func (s *MongoPostStore) Upvote(ctx context.Context, postID primitive.ObjectID) error {
	return s.incrementVote(ctx, postID, "upvotes")
}

func (s *MongoPostStore) Downvote(ctx context.Context, postID primitive.ObjectID) error {
	return s.incrementVote(ctx, postID, "downvotes")
}

// incrementVote relies on $inc so that concurrent votes are never lost to a
// read-modify-write cycle.
func (s *MongoPostStore) incrementVote(ctx context.Context, postID primitive.ObjectID, field string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$inc": bson.M{field: 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) AddComment(ctx context.Context, postID, authorID primitive.ObjectID, content string) (*models.Comment, error) {
	now := time.Now().Unix()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		UserID:    authorID,
		Replies:   []models.Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &comment, nil
}

func (s *MongoPostStore) AddReply(ctx context.Context, postID, commentID, authorID primitive.ObjectID, content string) (*models.Reply, error) {
	now := time.Now().Unix()
	reply := models.Reply{
		ID:        primitive.NewObjectID(),
		Content:   content,
		UserID:    authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The positional operator appends inside the matched comment in one
	// document update, so the reply lands atomically like a vote does.
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{"$push": bson.M{"comments.$.replies": reply}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		count, err := s.coll.CountDocuments(ctx, bson.M{"_id": postID})
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrCommentNotFound
	}
	return &reply, nil
}
