package store

import (
	"context"

	"megaexe/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	// Check first so the common case gets a clean error; the unique index on
	// emailAddress catches the race between check and insert.
	err := s.coll.FindOne(ctx, bson.M{"emailAddress": user.EmailAddress}).Err()
	if err == nil {
		return ErrEmailTaken
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	_, err = s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"emailAddress": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	users := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.User
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, u := range found {
		users[u.ID] = u
	}
	return users, nil
}
