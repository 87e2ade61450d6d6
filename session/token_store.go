package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not active")

// TokenStore keeps every live bearer token (by jti) in redis, together with
// a per-user set so all of a user's tokens can be revoked at once. A token
// missing from the store is treated as logged out even if the JWT itself
// has not expired yet.
type TokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenStore(rdb *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{rdb: rdb, ttl: ttl}
}

type TokenRecord struct {
	UserID    uint  `json:"uid"`
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

func key(jti string) string { return fmt.Sprintf("token:%s", jti) }
func userSetKey(userID uint) string { return fmt.Sprintf("user:tokens:%d", userID) }

func (s *TokenStore) Save(ctx context.Context, jti string, userID uint) error {
	now := time.Now()
	b, _ := json.Marshal(TokenRecord{
		UserID:    userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(jti), b, s.ttl)
	pipe.SAdd(ctx, userSetKey(userID), jti)
	pipe.Expire(ctx, userSetKey(userID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *TokenStore) Get(ctx context.Context, jti string) (*TokenRecord, error) {
	b, err := s.rdb.Get(ctx, key(jti)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	var rec TokenRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	rec, _ := s.Get(ctx, jti)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(jti))
	if rec != nil {
		pipe.SRem(ctx, userSetKey(rec.UserID), jti)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForUser drops every live token of a user, e.g. when an admin
// deletes the account.
func (s *TokenStore) RevokeAllForUser(ctx context.Context, userID uint) error {
	jtis, err := s.rdb.SMembers(ctx, userSetKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, jti := range jtis {
		pipe.Del(ctx, key(jti))
	}
	pipe.Del(ctx, userSetKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
