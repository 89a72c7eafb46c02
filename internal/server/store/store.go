// Package store holds the development server's data access layer. The
// in-memory implementation is the default; a Postgres implementation is
// selected by configuring a DSN.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// User is a forum account. PasswordHash is a bcrypt hash.
type User struct {
	ID             string
	Username       string
	PasswordHash   []byte
	ProfilePicture string
}

// Conversation is a two-party thread. Participant A is the initiator; only
// participant B carries an avatar reference, matching the production schema.
type Conversation struct {
	ID                 string
	ParticipantAID     string
	ParticipantBID     string
	ParticipantAName   string
	ParticipantBName   string
	ParticipantBAvatar string
	LastMessage        string
}

// Message is one entry of a conversation, in chronological order.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
}

type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListConversations(ctx context.Context, userID string) ([]Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	AddPoints(ctx context.Context, userID string, points int) error
	Close()
}
