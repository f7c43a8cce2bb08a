package handlers

import (
	"errors"
	"log"
	"net/http"

	"megaexe/models"
	"megaexe/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
}

func AddComment(c *gin.Context) {
	postID, ok := postIDFromParam(c, "id")
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	authorID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	comment, err := posts.AddComment(ctx, postID, authorID, req.Content)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case err != nil:
		log.Printf("AddComment error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func AddReply(c *gin.Context) {
	postID, ok := postIDFromParam(c, "id")
	if !ok {
		return
	}
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	authorID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	reply, err := posts.AddReply(ctx, postID, commentID, authorID, req.Content)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case errors.Is(err, store.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	case err != nil:
		log.Printf("AddReply error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply added successfully",
		"reply":   reply,
	})
}

func GetComments(c *gin.Context) {
	postID, ok := postIDFromParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	post, err := posts.GetByID(ctx, postID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	case err != nil:
		log.Printf("GetComments error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	var authorIDs []primitive.ObjectID
	for _, comment := range post.Comments {
		authorIDs = append(authorIDs, comment.UserID)
		for _, reply := range comment.Replies {
			authorIDs = append(authorIDs, reply.UserID)
		}
	}
	authors, err := users.FindByIDs(ctx, authorIDs)
	if err != nil {
		log.Printf("GetComments authors error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// Comments and replies whose author reference no longer resolves are
	// dropped rather than failing the whole read.
	views := make([]models.CommentView, 0, len(post.Comments))
	for _, comment := range post.Comments {
		author, ok := authors[comment.UserID]
		if !ok {
			continue
		}
		view := models.CommentView{
			ID:        comment.ID,
			Content:   comment.Content,
			User:      models.Author{Name: author.DisplayName(), Picture: author.Picture},
			CreatedAt: comment.CreatedAt,
			Replies:   make([]models.ReplyView, 0, len(comment.Replies)),
		}
		for _, reply := range comment.Replies {
			replyAuthor, ok := authors[reply.UserID]
			if !ok {
				continue
			}
			view.Replies = append(view.Replies, models.ReplyView{
				ID:        reply.ID,
				Content:   reply.Content,
				User:      models.Author{Name: replyAuthor.DisplayName(), Picture: replyAuthor.Picture},
				CreatedAt: reply.CreatedAt,
			})
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}
