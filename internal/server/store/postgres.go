package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore serves the same queries from a real database for setups
// where the seeded memory store is not enough.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password_hash, profile_picture FROM users WHERE username = $1`

	u := &User{}
	err := s.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.ProfilePicture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	query := `
SELECT c.id, c.participant_a_id, c.participant_b_id,
       ua.username, ub.username, ub.profile_picture,
       COALESCE(m.content, '')
  FROM conversations c
  JOIN users ua ON ua.id = c.participant_a_id
  JOIN users ub ON ub.id = c.participant_b_id
  LEFT JOIN LATERAL (
        SELECT content FROM messages
         WHERE conversation_id = c.id
         ORDER BY id DESC LIMIT 1
  ) m ON true
 WHERE c.participant_a_id = $1 OR c.participant_b_id = $1
 ORDER BY c.id`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	out := []Conversation{}
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.ParticipantAID, &c.ParticipantBID,
			&c.ParticipantAName, &c.ParticipantBName, &c.ParticipantBAvatar,
			&c.LastMessage); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListMessages(ctx context.Context, conversationID string) ([]Message, error) {
	query := `
SELECT id, conversation_id, sender_id, content
  FROM messages
 WHERE conversation_id = $1
 ORDER BY id`

	rows, err := s.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AddPoints(ctx context.Context, userID string, points int) error {
	query := `
INSERT INTO points (user_id, balance) VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET balance = points.balance + EXCLUDED.balance`

	if _, err := s.pool.Exec(ctx, query, userID, points); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
