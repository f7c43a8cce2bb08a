package handlers

import (
	"context"
	"time"

	"megaexe/session"
	"megaexe/store"
	"megaexe/upload"
)

// Stores shared across all handler files, wired once at startup.
var (
	users    store.UserStore
	posts    store.PostStore
	sessions session.Store
	uploads  *upload.Receiver
)

// Setup wires the handler package's collaborators.
func Setup(u store.UserStore, p store.PostStore, s session.Store, up *upload.Receiver) {
	users = u
	posts = p
	sessions = s
	uploads = up
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
