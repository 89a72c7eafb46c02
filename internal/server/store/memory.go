package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryStore is the default backend: a fixed set of accounts and threads
// good enough to exercise every client flow without a database.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]*User // keyed by username
	conversations []Conversation
	messages      map[string][]Message // keyed by conversation id
	points        map[string]int       // keyed by user id
}

// NewMemoryStore builds a seeded store. Every seeded account uses the
// password "password".
func NewMemoryStore() (*MemoryStore, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	alice := &User{ID: uuid.NewString(), Username: "alice", PasswordHash: hash, ProfilePicture: "/uploads/avatars/alice.png"}
	bob := &User{ID: uuid.NewString(), Username: "bob", PasswordHash: hash, ProfilePicture: "/uploads/avatars/bob.png"}
	carol := &User{ID: uuid.NewString(), Username: "carol", PasswordHash: hash, ProfilePicture: ""}

	convAB := Conversation{
		ID:                 uuid.NewString(),
		ParticipantAID:     alice.ID,
		ParticipantBID:     bob.ID,
		ParticipantAName:   alice.Username,
		ParticipantBName:   bob.Username,
		ParticipantBAvatar: bob.ProfilePicture,
		LastMessage:        "see you at the meetup",
	}
	convCA := Conversation{
		ID:                 uuid.NewString(),
		ParticipantAID:     carol.ID,
		ParticipantBID:     alice.ID,
		ParticipantAName:   carol.Username,
		ParticipantBName:   alice.Username,
		ParticipantBAvatar: alice.ProfilePicture,
		LastMessage:        "thanks!",
	}

	s := &MemoryStore{
		users:         map[string]*User{alice.Username: alice, bob.Username: bob, carol.Username: carol},
		conversations: []Conversation{convAB, convCA},
		messages: map[string][]Message{
			convAB.ID: {
				{ID: uuid.NewString(), ConversationID: convAB.ID, SenderID: alice.ID, Content: "are you coming tomorrow?"},
				{ID: uuid.NewString(), ConversationID: convAB.ID, SenderID: bob.ID, Content: "yes, around seven"},
				{ID: uuid.NewString(), ConversationID: convAB.ID, SenderID: alice.ID, Content: "see you at the meetup"},
			},
			convCA.ID: {
				{ID: uuid.NewString(), ConversationID: convCA.ID, SenderID: carol.ID, Content: "got the badge working"},
				{ID: uuid.NewString(), ConversationID: convCA.ID, SenderID: alice.ID, Content: "thanks!"},
			},
		},
		points: map[string]int{},
	}
	return s, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Conversation{}
	for _, c := range s.conversations {
		if c.ParticipantAID == userID || c.ParticipantBID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListMessages(ctx context.Context, conversationID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[conversationID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) AddPoints(ctx context.Context, userID string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[userID] += points
	return nil
}

// Points reports the balance accumulated through QR redemptions.
func (s *MemoryStore) Points(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points[userID]
}

func (s *MemoryStore) Close() {}
