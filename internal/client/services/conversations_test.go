package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/common"
)

func testConversation() api.Conversation {
	return api.Conversation{
		ID:                 "7",
		ParticipantAID:     "1",
		ParticipantBID:     "2",
		ParticipantAName:   "alice",
		ParticipantBName:   "bob",
		ParticipantBAvatar: "uploads/bob.png",
		LastMessage:        "see you",
	}
}

func TestListConversations_PreservesServerOrder(t *testing.T) {
	f := &fakeClient{ConversationsRet: []api.Conversation{
		{ID: "9"}, {ID: "3"}, {ID: "7"},
	}}
	svc := NewConversationService(f, testLogger())

	convs, err := svc.ListConversations(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, convs, 3)
	assert.Equal(t, "1", f.LastListUserID)
	// no client-side re-sorting
	assert.Equal(t, "9", convs[0].ID.String())
	assert.Equal(t, "3", convs[1].ID.String())
	assert.Equal(t, "7", convs[2].ID.String())
}

func TestListConversations_EmptyResult_IsNotAnError(t *testing.T) {
	f := &fakeClient{ConversationsRet: []api.Conversation{}}
	svc := NewConversationService(f, testLogger())

	convs, err := svc.ListConversations(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, convs)
	assert.Empty(t, convs)
}

func TestListConversations_FetchError_IsDistinctFromEmpty(t *testing.T) {
	f := &fakeClient{ConversationsErr: api.ErrTransport}
	svc := NewConversationService(f, testLogger())

	convs, err := svc.ListConversations(context.Background(), "1")
	require.ErrorIs(t, err, api.ErrTransport)
	assert.Nil(t, convs)
}

func TestListConversations_WithoutUserID(t *testing.T) {
	svc := NewConversationService(&fakeClient{}, testLogger())

	_, err := svc.ListConversations(context.Background(), "")
	require.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestResolveOtherParticipant_CurrentUserIsA(t *testing.T) {
	svc := NewConversationService(&fakeClient{}, testLogger())

	other, err := svc.ResolveOtherParticipant(context.Background(), testConversation(), "1")
	require.NoError(t, err)
	assert.Equal(t, Participant{ID: "2", DisplayName: "bob", AvatarRef: "uploads/bob.png"}, other)
}

func TestResolveOtherParticipant_CurrentUserIsB(t *testing.T) {
	svc := NewConversationService(&fakeClient{}, testLogger())

	other, err := svc.ResolveOtherParticipant(context.Background(), testConversation(), "2")
	require.NoError(t, err)
	// only participant B carries an avatar on the wire
	assert.Equal(t, Participant{ID: "1", DisplayName: "alice"}, other)
}

func TestResolveOtherParticipant_NeitherMatches_PlaceholderAndError(t *testing.T) {
	svc := NewConversationService(&fakeClient{}, testLogger())

	other, err := svc.ResolveOtherParticipant(context.Background(), testConversation(), "9")
	require.ErrorIs(t, err, common.ErrResolution)
	assert.Equal(t, PlaceholderParticipantName, other.DisplayName, "caller renders the placeholder instead of crashing")
	assert.Empty(t, other.AvatarRef)
}

func TestOpenConversation_ReturnsHistoryInOrder(t *testing.T) {
	f := &fakeClient{MessagesRet: []api.Message{
		{ID: "1", ConversationID: "7", SenderID: "1", Content: "hi"},
		{ID: "2", ConversationID: "7", SenderID: "2", Content: "hello"},
	}}
	svc := NewConversationService(f, testLogger())

	chat, err := svc.OpenConversation(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "7", f.LastFetchConvID)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "hi", chat.Messages[0].Content)
}

func TestOpenConversation_EmptyHistory_IsValid(t *testing.T) {
	f := &fakeClient{MessagesRet: []api.Message{}}
	svc := NewConversationService(f, testLogger())

	chat, err := svc.OpenConversation(context.Background(), "7")
	require.NoError(t, err)
	assert.Empty(t, chat.Messages)
}

func TestOpenConversation_WithoutID(t *testing.T) {
	svc := NewConversationService(&fakeClient{}, testLogger())

	_, err := svc.OpenConversation(context.Background(), "")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestChat_DraftIsLocalOnly(t *testing.T) {
	chat := &Chat{ConversationID: "7"}

	chat.SetDraft("on my way")
	assert.Equal(t, "on my way", chat.Draft())

	taken := chat.TakeDraft()
	assert.Equal(t, "on my way", taken)
	assert.Empty(t, chat.Draft(), "composing clears the local input")
}

func TestOutgoing_ClassifiesBySender(t *testing.T) {
	m := api.Message{SenderID: "42"}
	assert.True(t, Outgoing(m, "42"))
	assert.False(t, Outgoing(m, "7"))
}
