// Package api implements the HTTP/JSON client for the remote NexaBAG
// services: authentication, QR redemption, labs content, messaging, and the
// published version descriptor.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Client defines the remote operations the Delta Mobile controllers depend
// on. The concrete implementation is HTTPClient; tests provide fakes.
//
// All methods honor context cancellation and classify failures as
// ErrTransport (network, non-2xx) or ErrProtocol (unexpected response
// shape), matchable with errors.Is.
type Client interface {
	// Login exchanges credentials for the authenticated user record.
	// A well-formed rejection maps to ErrCredentialsRejected.
	Login(ctx context.Context, username, password string) (*User, error)

	// VerifyQR redeems a scanned token for the given user. The result's
	// Message is meant to be shown to the user verbatim, whether or not
	// Success is set.
	VerifyQR(ctx context.Context, token, userID string) (*VerifyResult, error)

	// FetchLabs retrieves the static labs content descriptor.
	FetchLabs(ctx context.Context) (*LabsContent, error)

	// LatestVersion retrieves the published version string from the
	// version descriptor. Only the flat {"version": "..."} schema is
	// accepted.
	LatestVersion(ctx context.Context) (string, error)

	// ListConversations returns every conversation involving userID, in
	// server order. The response is enveloped: {"conversations": [...]}.
	ListConversations(ctx context.Context, userID string) ([]Conversation, error)

	// FetchMessages returns the message history of one conversation, in
	// server (chronological) order. The response is a bare JSON array.
	FetchMessages(ctx context.Context, conversationID string) ([]Message, error)

	Close() error
}

// ID tolerates both JSON strings and JSON numbers; the PHP backend is not
// consistent about which it emits for record ids.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Int returns the numeric value of the id, or an error if it is not numeric.
func (id ID) Int() (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

// User is the account record returned by the auth endpoint.
type User struct {
	ID             ID     `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// VerifyResult is the outcome of a QR token redemption.
type VerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Conversation is a two-party thread from the messaging endpoint. Only
// participant B carries an avatar reference on the wire; participant A is
// historically the conversation initiator.
type Conversation struct {
	ID                 ID     `json:"id"`
	ParticipantAID     ID     `json:"participant_a_id"`
	ParticipantBID     ID     `json:"participant_b_id"`
	ParticipantAName   string `json:"participant_a_name"`
	ParticipantBName   string `json:"participant_b_name"`
	ParticipantBAvatar string `json:"participant_b_avatar"`
	LastMessage        string `json:"last_message"`
}

// Message is one entry of a conversation's history. Chronological order is
// implied by list position; the server assigns it.
type Message struct {
	ID             ID     `json:"id"`
	ConversationID ID     `json:"conversation_id"`
	SenderID       ID     `json:"sender_id"`
	Content        string `json:"content"`
}

// LabsContent is the static descriptor of projects and experiments.
type LabsContent struct {
	Projects    []LabsItem `json:"projects"`
	Experiments []LabsItem `json:"experiments"`
}

// LabsItem describes one project or experiment.
type LabsItem struct {
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Stage       string      `json:"stage"`
	Detail      *LabsDetail `json:"detail,omitempty"`
	Links       []LabsLink  `json:"links,omitempty"`
}

// LabsDetail is the expanded description shown on an item's detail page.
type LabsDetail struct {
	Hero            string   `json:"hero"`
	LongDescription string   `json:"longDescription"`
	Stack           []string `json:"stack"`
}

// LabsLink is an external link attached to a labs item.
type LabsLink struct {
	URL string `json:"url"`
}
