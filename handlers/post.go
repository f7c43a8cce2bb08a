package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"megaexe/models"
	"megaexe/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EditPostRequest struct {
	Content  string `json:"content"`
	Category string `json:"category"`
}

func ListPosts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	list, err := posts.ListAll(ctx)
	if err != nil {
		log.Printf("ListPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if list == nil {
		list = []models.Post{}
	}

	c.JSON(http.StatusOK, list)
}

func CreatePost(c *gin.Context) {
	editorID, ok := editorFromContext(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	post := models.Post{
		UserID:   editorID,
		Content:  c.PostForm("content"),
		Category: c.PostForm("category"),
		Comments: []models.Comment{},
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := uploads.Save(file)
		if err != nil {
			log.Printf("CreatePost upload error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
			return
		}
		post.ImageURL = path
	}

	if err := posts.Create(ctx, &post); err != nil {
		log.Printf("CreatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func EditPost(c *gin.Context) {
	postID, ok := postIDFromParam(c, "id")
	if !ok {
		return
	}
	editorID, ok := editorFromContext(c)
	if !ok {
		return
	}

	var req EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Empty fields keep their prior value, mirroring the partial-update
	// contract of the edit operation.
	var content, category *string
	if req.Content != "" {
		content = &req.Content
	}
	if req.Category != "" {
		category = &req.Category
	}

	ctx, cancel := requestContext()
	defer cancel()

	updated, err := posts.Edit(ctx, postID, editorID, content, category)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to edit this post"})
		return
	case err != nil:
		log.Printf("EditPost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeletePost(c *gin.Context) {
	postID, ok := postIDFromParam(c, "id")
	if !ok {
		return
	}
	editorID, ok := editorFromContext(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	err := posts.Delete(ctx, postID, editorID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this post"})
		return
	case err != nil:
		log.Printf("DeletePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func UpvotePost(c *gin.Context) {
	votePost(c, posts.Upvote, "Post upvoted successfully")
}

func DownvotePost(c *gin.Context) {
	votePost(c, posts.Downvote, "Post downvoted successfully")
}

func votePost(c *gin.Context, vote func(ctx context.Context, postID primitive.ObjectID) error, message string) {
	postID, ok := postIDFromParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	err := vote(ctx, postID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case err != nil:
		log.Printf("votePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func SortedPosts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	list, err := posts.ListSorted(ctx, c.Query("sortBy"))
	if err != nil {
		log.Printf("SortedPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// Resolve each post's author to its display view where the owner
	// reference exists.
	var ownerIDs []primitive.ObjectID
	for _, p := range list {
		if !p.UserID.IsZero() {
			ownerIDs = append(ownerIDs, p.UserID)
		}
	}
	authors, err := users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		log.Printf("SortedPosts authors error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	for i := range list {
		if author, ok := authors[list[i].UserID]; ok {
			list[i].User = &models.Author{Name: author.DisplayName(), Picture: author.Picture}
		}
	}
	if list == nil {
		list = []models.Post{}
	}

	c.JSON(http.StatusOK, list)
}

func postIDFromParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return primitive.NilObjectID, false
	}
	return postID, true
}

func editorFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	editorID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return editorID, true
}
