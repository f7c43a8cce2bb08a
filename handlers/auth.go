package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"megaexe/models"
	"megaexe/session"
	"megaexe/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	FirstName    string `json:"firstname" binding:"required"`
	LastName     string `json:"lastname" binding:"required"`
	EmailAddress string `json:"emailAddress" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	EmailAddress string `json:"emailAddress" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
}

const defaultBcryptCost = 5

func bcryptCost() int {
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			return cost
		}
	}
	return defaultBcryptCost
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().Unix(),
	}

	if err := users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User already registered, login instead"})
			return
		}
		log.Printf("Register error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	// Unknown email and wrong password answer identically so the response
	// never reveals which one was at fault.
	user, err := users.FindByEmail(ctx, req.EmailAddress)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		log.Printf("Login error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid email or password"})
		return
	}

	sid := session.NewID()
	data := session.Data{
		EmailAddress: user.EmailAddress,
		UserID:       user.ID.Hex(),
		IsAuth:       true,
	}
	if err := sessions.Save(ctx, sid, data); err != nil {
		log.Printf("Login session error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetCookie(session.CookieName, sid, int(session.TTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in",
		"userId":  user.ID.Hex(),
	})
}

func Logout(c *gin.Context) {
	if sid, err := c.Cookie(session.CookieName); err == nil {
		ctx, cancel := requestContext()
		defer cancel()
		if err := sessions.Destroy(ctx, sid); err != nil {
			log.Printf("Logout error: %v", err)
		}
	}

	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "User logged out"})
}
