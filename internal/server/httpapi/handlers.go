package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/nexabag/deltamobile/internal/logging"
	"github.com/nexabag/deltamobile/internal/server/qrtoken"
	"github.com/nexabag/deltamobile/internal/server/store"
)

type Handler struct {
	store   store.Store
	qr      *qrtoken.Issuer
	version string
	log     logging.Logger
}

// Wire DTOs. Field names and casing must match what the mobile client
// decodes; the PHP backend set them in stone.

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type wireUser struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

type authResponse struct {
	Success bool      `json:"success"`
	User    *wireUser `json:"user,omitempty"`
	Message string    `json:"message,omitempty"`
}

type verifyRequest struct {
	QRToken string `json:"qr_token"`
	UserID  string `json:"user_id"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type wireConversation struct {
	ID                 string `json:"id"`
	ParticipantAID     string `json:"participant_a_id"`
	ParticipantBID     string `json:"participant_b_id"`
	ParticipantAName   string `json:"participant_a_name"`
	ParticipantBName   string `json:"participant_b_name"`
	ParticipantBAvatar string `json:"participant_b_avatar"`
	LastMessage        string `json:"last_message"`
}

type wireMessage struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Content        string `json:"content"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleAuth checks credentials against the store. Rejections are reported
// in-band with success:false and HTTP 200, the way the PHP endpoint does.
func (h *Handler) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Success: false, Message: "malformed request"})
		return
	}

	u, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, authResponse{Success: false, Message: "Invalid username or password"})
			return
		}
		h.log.Error(r.Context(), "auth lookup failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		writeJSON(w, http.StatusOK, authResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		User:    &wireUser{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture},
	})
}

// handleQRVerify redeems a scanned token for the posted user. The message is
// user-facing either way.
func (h *Handler) handleQRVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, verifyResponse{Success: false, Message: "malformed request"})
		return
	}
	if req.QRToken == "" || req.UserID == "" {
		writeJSON(w, http.StatusOK, verifyResponse{Success: false, Message: "Missing token or user"})
		return
	}

	claims, err := h.qr.Redeem(req.QRToken)
	switch {
	case err == nil:
	case errors.Is(err, qrtoken.ErrAlreadyUsed):
		writeJSON(w, http.StatusOK, verifyResponse{Success: false, Message: "This code was already redeemed"})
		return
	case errors.Is(err, qrtoken.ErrExpired):
		writeJSON(w, http.StatusOK, verifyResponse{Success: false, Message: "This code has expired"})
		return
	default:
		writeJSON(w, http.StatusOK, verifyResponse{Success: false, Message: "Invalid code"})
		return
	}

	if err := h.store.AddPoints(r.Context(), req.UserID, claims.Points); err != nil {
		h.log.Error(r.Context(), "crediting points failed", "error", err, "user_id", req.UserID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Success: true,
		Message: fmt.Sprintf("%d points added to your account", claims.Points),
	})
}

// handleQRIssue mints a token for manual testing of the scan flow.
func (h *Handler) handleQRIssue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Points int `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Points <= 0 {
		req.Points = 5
	}

	tok, err := h.qr.Mint(req.Points)
	if err != nil {
		h.log.Error(r.Context(), "minting token failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"qr_token": tok})
}

// handlePackage publishes the version descriptor in the flat schema the
// update checker expects.
func (h *Handler) handlePackage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// handleMessages dispatches on the action query parameter. list_all returns
// an enveloped object, fetch_messages a bare array; both shapes are fixed by
// the client.
func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch action := r.URL.Query().Get("action"); action {
	case "list_all":
		userID := r.URL.Query().Get("user_id")
		convs, err := h.store.ListConversations(r.Context(), userID)
		if err != nil {
			h.log.Error(r.Context(), "listing conversations failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]wireConversation, 0, len(convs))
		for _, c := range convs {
			out = append(out, wireConversation{
				ID:                 c.ID,
				ParticipantAID:     c.ParticipantAID,
				ParticipantBID:     c.ParticipantBID,
				ParticipantAName:   c.ParticipantAName,
				ParticipantBName:   c.ParticipantBName,
				ParticipantBAvatar: c.ParticipantBAvatar,
				LastMessage:        c.LastMessage,
			})
		}
		writeJSON(w, http.StatusOK, map[string][]wireConversation{"conversations": out})

	case "fetch_messages":
		convID := r.URL.Query().Get("conversation_id")
		msgs, err := h.store.ListMessages(r.Context(), convID)
		if err != nil {
			h.log.Error(r.Context(), "fetching messages failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]wireMessage, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, wireMessage{
				ID:             m.ID,
				ConversationID: m.ConversationID,
				SenderID:       m.SenderID,
				Content:        m.Content,
			})
		}
		writeJSON(w, http.StatusOK, out)

	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}
