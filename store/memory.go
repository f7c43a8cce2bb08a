package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"megaexe/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserStore keeps users in process memory. It backs the test suite and
// database-less local runs.
type MemoryUserStore struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]models.User
	byEmail map[string]primitive.ObjectID
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[primitive.ObjectID]models.User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.EmailAddress]; exists {
		return ErrEmailTaken
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	s.byEmail[user.EmailAddress] = user.ID
	return nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make(map[primitive.ObjectID]models.User, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			found[id] = user
		}
	}
	return found, nil
}

// MemoryPostStore is the in-memory post aggregate. All mutations run under
// one lock, which gives the same no-lost-update guarantee the Mongo store
// gets from $inc and $push.
type MemoryPostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
	order []primitive.ObjectID
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func clonePost(p *models.Post) models.Post {
	out := *p
	out.Comments = make([]models.Comment, len(p.Comments))
	for i, c := range p.Comments {
		out.Comments[i] = c
		out.Comments[i].Replies = append([]models.Reply(nil), c.Replies...)
		if out.Comments[i].Replies == nil {
			out.Comments[i].Replies = []models.Reply{}
		}
	}
	return out
}

func (s *MemoryPostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.order))
	for _, id := range s.order {
		posts = append(posts, clonePost(s.posts[id]))
	}
	return posts, nil
}

func (s *MemoryPostStore) ListSorted(ctx context.Context, sortBy string) ([]models.Post, error) {
	posts, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if sortBy == SortByUpvotes {
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].Upvotes > posts[j].Upvotes })
	} else {
		sort.SliceStable(posts, func(i, j int) bool { return posts[i].CreatedAt > posts[j].CreatedAt })
	}
	return posts, nil
}

func (s *MemoryPostStore) GetByID(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	out := clonePost(post)
	return &out, nil
}

func (s *MemoryPostStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt == 0 {
		post.CreatedAt = time.Now().Unix()
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	stored := clonePost(post)
	s.posts[post.ID] = &stored
	s.order = append(s.order, post.ID)
	return nil
}

func (s *MemoryPostStore) Edit(ctx context.Context, postID, editorID primitive.ObjectID, content, category *string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	if post.UserID != editorID {
		return nil, ErrForbidden
	}
	if content != nil {
		post.Content = *content
	}
	if category != nil {
		post.Category = *category
	}
	out := clonePost(post)
	return &out, nil
}

func (s *MemoryPostStore) Delete(ctx context.Context, postID, editorID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	if post.UserID != editorID {
		return ErrForbidden
	}
	delete(s.posts, postID)
	for i, id := range s.order {
		if id == postID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryPostStore) Upvote(ctx context.Context, postID primitive.ObjectID) error {
	return s.incrementVote(postID, func(p *models.Post) { p.Upvotes++ })
}

func (s *MemoryPostStore) Downvote(ctx context.Context, postID primitive.ObjectID) error {
	return s.incrementVote(postID, func(p *models.Post) { p.Downvotes++ })
}

func (s *MemoryPostStore) incrementVote(postID primitive.ObjectID, bump func(*models.Post)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return ErrNotFound
	}
	bump(post)
	return nil
}

func (s *MemoryPostStore) AddComment(ctx context.Context, postID, authorID primitive.ObjectID, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now().Unix()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		UserID:    authorID,
		Replies:   []models.Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	post.Comments = append(post.Comments, comment)
	return &comment, nil
}

func (s *MemoryPostStore) AddReply(ctx context.Context, postID, commentID, authorID primitive.ObjectID, content string) (*models.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range post.Comments {
		if post.Comments[i].ID != commentID {
			continue
		}
		now := time.Now().Unix()
		reply := models.Reply{
			ID:        primitive.NewObjectID(),
			Content:   content,
			UserID:    authorID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		post.Comments[i].Replies = append(post.Comments[i].Replies, reply)
		return &reply, nil
	}
	return nil, ErrCommentNotFound
}
