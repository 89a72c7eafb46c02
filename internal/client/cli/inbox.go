package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nexabag/deltamobile/internal/client/services"
)

// Inbox fetches the conversation list and switches to the inbox view. An
// empty list is rendered as such, not treated as a failure.
func (a *App) Inbox(ctx context.Context) error {
	userID := a.sessions.Current().UserID

	convs, err := a.conversations.ListConversations(ctx, userID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load conversations")
		return err
	}

	a.inbox = a.inbox[:0]
	for _, c := range convs {
		// resolution failures already yield the placeholder participant
		other, _ := a.conversations.ResolveOtherParticipant(ctx, c, userID)
		a.inbox = append(a.inbox, inboxEntry{conversation: c, other: other})
	}
	a.view = ViewInbox

	if len(a.inbox) == 0 {
		fmt.Fprintln(a.out, "No conversations yet")
		return nil
	}
	for i, e := range a.inbox {
		fmt.Fprintf(a.out, "%d) %s: %s\n", i+1, e.other.DisplayName, e.conversation.LastMessage)
	}
	return nil
}

// Open fetches the history of the n-th listed conversation and switches to
// the chat view.
func (a *App) Open(ctx context.Context, arg string) error {
	if len(a.inbox) == 0 {
		fmt.Fprintln(a.out, "Run 'inbox' first")
		return nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.inbox) {
		fmt.Fprintf(a.out, "Pick a conversation between 1 and %d\n", len(a.inbox))
		return nil
	}
	entry := a.inbox[n-1]

	chat, err := a.conversations.OpenConversation(ctx, entry.conversation.ID.String())
	if err != nil {
		fmt.Fprintln(a.out, "Could not load messages")
		return err
	}

	a.chat = chat
	a.peer = entry.other
	a.view = ViewChat

	if len(chat.Messages) == 0 {
		fmt.Fprintln(a.out, "No messages yet")
		return nil
	}
	userID := a.sessions.Current().UserID
	for _, m := range chat.Messages {
		sender := a.peer.DisplayName
		if services.Outgoing(m, userID) {
			sender = "you"
		}
		fmt.Fprintf(a.out, "%s: %s\n", sender, m.Content)
	}
	return nil
}

// Say stages outgoing text in the open chat. Drafts are local-only.
func (a *App) Say(ctx context.Context, text string) error {
	if a.chat == nil {
		fmt.Fprintln(a.out, "Open a conversation first")
		return nil
	}
	a.chat.SetDraft(text)
	fmt.Fprintln(a.out, "Draft staged")
	return nil
}

// Send clears the staged draft. Delivery to the backend is not available;
// the composed text is discarded, matching the platform's behavior.
func (a *App) Send(ctx context.Context) error {
	if a.chat == nil {
		fmt.Fprintln(a.out, "Open a conversation first")
		return nil
	}
	if a.chat.TakeDraft() == "" {
		fmt.Fprintln(a.out, "Nothing staged")
		return nil
	}
	fmt.Fprintln(a.out, "Message delivery is not available yet, draft discarded")
	return nil
}

// Back walks one step up the view stack: chat to inbox, inbox to home.
// Every other view returns home.
func (a *App) Back(ctx context.Context) error {
	switch a.view {
	case ViewChat:
		a.chat = nil
		a.peer = services.Participant{}
		a.view = ViewInbox
	case ViewInbox, ViewProfile, ViewLabs:
		a.view = ViewHome
	case ViewHome, ViewLogin:
		// nowhere further up
	}
	return nil
}
