package store

import (
	"context"
	"sync"
	"testing"

	"megaexe/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryUserStoreDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserStore()

	first := models.User{FirstName: "Ada", LastName: "Lovelace", EmailAddress: "ada@example.com"}
	require.NoError(t, users.Create(ctx, &first))
	assert.False(t, first.ID.IsZero())

	second := models.User{FirstName: "Eve", LastName: "Adams", EmailAddress: "ada@example.com"}
	assert.ErrorIs(t, users.Create(ctx, &second), ErrEmailTaken)

	found, err := users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.FirstName)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserStoreFindByIDs(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserStore()

	known := models.User{EmailAddress: "known@example.com"}
	require.NoError(t, users.Create(ctx, &known))

	found, err := users.FindByIDs(ctx, []primitive.ObjectID{known.ID, primitive.NewObjectID()})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, known.ID)
}

func TestPostLifecycle(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostStore()
	owner := primitive.NewObjectID()

	post := models.Post{UserID: owner, Content: "hello"}
	require.NoError(t, posts.Create(ctx, &post))
	assert.False(t, post.ID.IsZero())
	assert.NotZero(t, post.CreatedAt)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.EqualValues(t, 0, got.Upvotes)
	assert.EqualValues(t, 0, got.Downvotes)
	assert.Empty(t, got.Comments)

	require.NoError(t, posts.Delete(ctx, post.ID, owner))

	_, err = posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice fails cleanly with the same error
	assert.ErrorIs(t, posts.Delete(ctx, post.ID, owner), ErrNotFound)
}

func TestEditPartialUpdateAndOwnership(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostStore()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	post := models.Post{UserID: owner, Content: "original", Category: "misc"}
	require.NoError(t, posts.Create(ctx, &post))

	_, err := posts.Edit(ctx, post.ID, stranger, nil, strPtr("news"))
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := posts.Edit(ctx, post.ID, owner, nil, strPtr("news"))
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Content)
	assert.Equal(t, "news", updated.Category)

	_, err = posts.Edit(ctx, primitive.NewObjectID(), owner, strPtr("x"), nil)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, posts.Delete(ctx, post.ID, stranger), ErrForbidden)
}

func TestConcurrentUpvotes(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostStore()

	post := models.Post{UserID: primitive.NewObjectID()}
	require.NoError(t, posts.Create(ctx, &post))

	const voters = 100
	var wg sync.WaitGroup
	wg.Add(voters)
	for i := 0; i < voters; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, posts.Upvote(ctx, post.ID))
		}()
	}
	wg.Wait()

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, voters, got.Upvotes)

	assert.ErrorIs(t, posts.Upvote(ctx, primitive.NewObjectID()), ErrNotFound)
	assert.ErrorIs(t, posts.Downvote(ctx, primitive.NewObjectID()), ErrNotFound)
}

func TestAddCommentAndReply(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostStore()
	author := primitive.NewObjectID()

	post := models.Post{UserID: author}
	require.NoError(t, posts.Create(ctx, &post))

	first, err := posts.AddComment(ctx, post.ID, author, "first!")
	require.NoError(t, err)
	second, err := posts.AddComment(ctx, post.ID, author, "second")
	require.NoError(t, err)

	reply, err := posts.AddReply(ctx, post.ID, first.ID, author, "welcome")
	require.NoError(t, err)

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	// Append order is display order
	assert.Equal(t, first.ID, got.Comments[0].ID)
	assert.Equal(t, second.ID, got.Comments[1].ID)

	require.Len(t, got.Comments[0].Replies, 1)
	assert.Equal(t, reply.ID, got.Comments[0].Replies[0].ID)
	assert.Equal(t, "welcome", got.Comments[0].Replies[0].Content)
	assert.Equal(t, author, got.Comments[0].Replies[0].UserID)

	_, err = posts.AddComment(ctx, primitive.NewObjectID(), author, "lost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = posts.AddReply(ctx, post.ID, primitive.NewObjectID(), author, "lost")
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = posts.AddReply(ctx, primitive.NewObjectID(), first.ID, author, "lost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSorted(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostStore()
	owner := primitive.NewObjectID()

	seed := []models.Post{
		{UserID: owner, Content: "old", CreatedAt: 100, Upvotes: 5},
		{UserID: owner, Content: "mid", CreatedAt: 200, Upvotes: 1},
		{UserID: owner, Content: "new", CreatedAt: 300, Upvotes: 3},
	}
	for i := range seed {
		require.NoError(t, posts.Create(ctx, &seed[i]))
	}

	byVotes, err := posts.ListSorted(ctx, SortByUpvotes)
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new", "mid"}, contents(byVotes))

	byRecency, err := posts.ListSorted(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, contents(byRecency))
}

func contents(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Content
	}
	return out
}

func strPtr(s string) *string { return &s }
