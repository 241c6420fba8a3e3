package credstore

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps the credential as two keys, <prefix>token and
// <prefix>user, written and deleted in a single transaction.
type RedisStore struct {
	client   redis.UniversalClient
	tokenKey string
	userKey  string
	logger   *zap.Logger
}

// NewRedisStore builds a store under the given key prefix.
func NewRedisStore(client redis.UniversalClient, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client:   client,
		tokenKey: prefix + "token",
		userKey:  prefix + "user",
		logger:   logger,
	}
}

func (s *RedisStore) Save(ctx context.Context, creds Credentials) error {
	if err := requireComplete(creds); err != nil {
		return err
	}
	userJSON, err := encodeUser(creds.User)
	if err != nil {
		return storeErr("save", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey, creds.Token, 0)
		pipe.Set(ctx, s.userKey, userJSON, 0)
		return nil
	})
	if err != nil {
		return storeErr("save", err)
	}
	s.logger.Debug("credentials saved", zap.String("key", s.tokenKey))
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (Credentials, error) {
	values, err := s.client.MGet(ctx, s.tokenKey, s.userKey).Result()
	if err != nil {
		return Credentials{}, storeErr("load", err)
	}
	token, _ := values[0].(string)
	rawUser, _ := values[1].(string)
	if token == "" || rawUser == "" {
		if token != "" || rawUser != "" {
			s.logger.Warn("ignoring half-written credential record")
		}
		return Credentials{}, nil
	}

	user, err := decodeUser([]byte(rawUser))
	if err != nil {
		return Credentials{}, storeErr("load", err)
	}
	return normalize(Credentials{Token: token, User: user}), nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey, s.userKey).Err(); err != nil {
		return storeErr("clear", err)
	}
	return nil
}
