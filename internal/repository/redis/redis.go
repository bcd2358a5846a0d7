package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Session is the server-side record of an issued access token.
type Session struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionRepository keeps one active token per user. Keys:
//
//	session:user:{id}      -> Session JSON
//	session:token:{token}  -> user id
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func userKey(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

func tokenKey(token string) string {
	return "session:token:" + token
}

// StoreSession saves the token until expiresAt and replaces any previous token
// of the user.
func (r *SessionRepository) StoreSession(ctx context.Context, userID uint, role, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	jsonData, err := json.Marshal(Session{
		UserID:    userID,
		Role:      role,
		Token:     token,
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	previous, err := r.GetSession(ctx, userID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != nil && previous.Token != token {
			pipe.Del(ctx, tokenKey(previous.Token))
		}
		pipe.Set(ctx, userKey(userID), jsonData, ttl)
		pipe.Set(ctx, tokenKey(token), userID, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, userID uint) (*Session, error) {
	val, err := r.client.Get(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

// ValidateToken returns the user id the token was issued to.
func (r *SessionRepository) ValidateToken(ctx context.Context, token string) (uint, error) {
	userID, err := r.client.Get(ctx, tokenKey(token)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("failed to validate token: %w", err)
	}

	return uint(userID), nil
}

func (r *SessionRepository) RevokeSession(ctx context.Context, userID uint) error {
	s, err := r.GetSession(ctx, userID)
	if err != nil {
		return err
	}

	if err := r.client.Del(ctx, userKey(userID), tokenKey(s.Token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
