package services

import (
	"context"
	"fmt"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/common"
	"github.com/nexabag/deltamobile/internal/logging"
)

// PlaceholderParticipantName is shown when participant resolution fails.
const PlaceholderParticipantName = "Unknown"

// Participant is one side of a conversation as rendered in the list view.
type Participant struct {
	ID          string
	DisplayName string
	AvatarRef   string
}

// Chat is the open-conversation view state: the fetched history plus the
// locally staged draft. Messages are kept in server order (chronological).
type Chat struct {
	ConversationID string
	Messages       []api.Message

	draft string
}

// SetDraft stages outgoing text locally.
func (c *Chat) SetDraft(text string) { c.draft = text }

// Draft returns the currently staged text.
func (c *Chat) Draft() string { return c.draft }

// TakeDraft returns the staged text and clears it. Sending the text to the
// server is not part of this client: the backend exposes no send action, so
// composition is local-only.
func (c *Chat) TakeDraft() string {
	d := c.draft
	c.draft = ""
	return d
}

// Outgoing reports whether the message was sent by the given user.
func Outgoing(m api.Message, userID string) bool {
	return m.SenderID.String() == userID
}

// ConversationService owns the messaging list/detail retrieval.
type ConversationService struct {
	client api.Client
	log    logging.Logger
}

func NewConversationService(client api.Client, log logging.Logger) *ConversationService {
	return &ConversationService{client: client, log: log}
}

// ListConversations fetches every conversation involving userID. Server
// order is preserved; an empty result is valid and distinct from an error.
func (s *ConversationService) ListConversations(ctx context.Context, userID string) ([]api.Conversation, error) {
	if userID == "" {
		return nil, common.ErrNotLoggedIn
	}
	convs, err := s.client.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	return convs, nil
}

// ResolveOtherParticipant returns the display name and avatar of whichever
// participant is not userID. Only participant B carries an avatar on the
// wire, so resolving toward A yields an empty avatar reference.
//
// When userID matches neither participant the conversation data is
// inconsistent with the session; the placeholder participant is returned
// together with common.ErrResolution so the caller can render something
// sensible instead of crashing.
func (s *ConversationService) ResolveOtherParticipant(ctx context.Context, conv api.Conversation, userID string) (Participant, error) {
	switch userID {
	case conv.ParticipantAID.String():
		return Participant{
			ID:          conv.ParticipantBID.String(),
			DisplayName: conv.ParticipantBName,
			AvatarRef:   conv.ParticipantBAvatar,
		}, nil
	case conv.ParticipantBID.String():
		return Participant{
			ID:          conv.ParticipantAID.String(),
			DisplayName: conv.ParticipantAName,
		}, nil
	default:
		s.log.Error(ctx, "current user is not a participant of conversation",
			"conversation_id", conv.ID.String(), "user_id", userID)
		return Participant{DisplayName: PlaceholderParticipantName},
			fmt.Errorf("%w: user %s not in conversation %s", common.ErrResolution, userID, conv.ID)
	}
}

// OpenConversation fetches the message history and returns the chat view
// state. An empty history (a brand-new conversation) is valid.
func (s *ConversationService) OpenConversation(ctx context.Context, conversationID string) (*Chat, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: conversation id required", common.ErrValidation)
	}
	messages, err := s.client.FetchMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}
	return &Chat{ConversationID: conversationID, Messages: messages}, nil
}
