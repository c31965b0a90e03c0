package session

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
)

// Session is the authenticated identity for the current actor. The token
// is the storage key and is never part of the stored record.
type Session struct {
	UserID uint        `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	Token  string      `json:"-"`
}

const (
	tokenKeyPrefix = "session:token:"
	userKeyPrefix  = "session:user:"
)

// Store owns session persistence. All reads and writes of the active
// session go through it; nothing else touches the underlying keys.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Save persists the session under its token and points the user entry at
// it. A previous session for the same user is revoked: last write wins.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	userKey := userKeyPrefix + formatID(sess.UserID)

	if old, err := s.rdb.Get(ctx, userKey).Result(); err == nil && old != "" && old != sess.Token {
		if err := s.rdb.Del(ctx, tokenKeyPrefix+old).Err(); err != nil {
			log.Println("session: failed to revoke previous token:", err)
		}
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, tokenKeyPrefix+sess.Token, data, s.ttl)
	pipe.Set(ctx, userKey, sess.Token, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Restore loads the session behind a token. Absent or corrupt entries
// degrade to a logged-out state (nil, nil) rather than an error.
func (s *Store) Restore(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	data, err := s.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil || !sess.Role.Valid() {
		log.Println("session: dropping corrupt stored session")
		s.rdb.Del(ctx, tokenKeyPrefix+token)
		return nil, nil
	}

	sess.Token = token
	return &sess, nil
}

// Delete purges the session unconditionally. Deleting a token with no
// active session is a no-op, not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sess, err := s.Restore(ctx, token)
	if err != nil {
		return err
	}

	keys := []string{tokenKeyPrefix + token}
	if sess != nil {
		keys = append(keys, userKeyPrefix+formatID(sess.UserID))
	}

	return s.rdb.Del(ctx, keys...).Err()
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
