package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// between instances. Each user also has a set of their session ids.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a store whose keys expire after ttl
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string    { return fmt.Sprintf("orders:sess:%s", id) }
func userSetKey(email string) string { return fmt.Sprintf("orders:user_sessions:%s", email) }

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.ID), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(sess.Email), sess.ID)
	pipe.Expire(ctx, userSetKey(sess.Email), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save overwrites the session body and keeps its remaining lifetime
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetXX(ctx, sessionKey(sess.ID), b, redis.KeepTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	sess, _ := s.Get(ctx, id)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	if sess != nil {
		pipe.SRem(ctx, userSetKey(sess.Email), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForUser ends every session of a deleted account
func (s *RedisStore) RevokeAllForUser(ctx context.Context, email string) error {
	ids, err := s.rdb.SMembers(ctx, userSetKey(email)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, sessionKey(id))
	}
	pipe.Del(ctx, userSetKey(email))
	_, err = pipe.Exec(ctx)
	return err
}
