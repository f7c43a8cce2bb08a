package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"megaexe/database"
	"megaexe/handlers"
	"megaexe/routes"
	"megaexe/session"
	"megaexe/store"
	"megaexe/upload"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("🚀 Starting Megaexe Backend Server...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.ConnectMongo(); err != nil {
			dbErr = err
			log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", dbErr)
	}

	// ===== CONNECT TO REDIS (SESSION STORE) =====
	if err := database.ConnectRedis(); err != nil {
		log.Fatal("❌ Failed to connect to Redis:", err)
	}

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ===== WIRING =====
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	uploadReceiver, err := upload.NewReceiver(uploadDir)
	if err != nil {
		log.Fatal("❌ Failed to prepare upload directory:", err)
	}

	sessionStore := session.NewRedisStore(database.Redis)
	handlers.Setup(
		store.NewMongoUserStore(database.Users),
		store.NewMongoPostStore(database.Posts),
		sessionStore,
		uploadReceiver,
	)

	router := routes.SetupRouter(sessionStore)
	router.Static("/uploads", uploadReceiver.Dir())

	// ===== SERVER CONFIG =====
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	host := os.Getenv("HOST")

	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error:", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}
	if err := database.DisconnectRedis(); err != nil {
		log.Println("❌ Redis disconnect:", err)
	}
	if err := database.DisconnectMongo(); err != nil {
		log.Println("❌ MongoDB disconnect:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
