package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore 는 휴대폰 인증 코드처럼 TTL 이 필요한 값을 보관한다.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

const (
	codeKeyPrefix     = "sms:code:"
	cooldownKeyPrefix = "sms:cooldown:"
)

// SetCode 는 전화번호에 대한 인증 코드 해시를 TTL 과 함께 저장한다.
// 기존 코드가 있으면 덮어쓴다 (재발송).
func (s *RedisStore) SetCode(ctx context.Context, phone, codeHash string, ttl time.Duration) error {
	return s.client.Set(ctx, codeKeyPrefix+phone, codeHash, ttl).Err()
}

// GetCode 는 저장된 코드 해시를 반환한다. 만료되었거나 없으면 빈 문자열을 반환한다.
func (s *RedisStore) GetCode(ctx context.Context, phone string) (string, error) {
	val, err := s.client.Get(ctx, codeKeyPrefix+phone).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// DeleteCode 는 검증에 성공한 코드를 제거해 재사용을 막는다.
func (s *RedisStore) DeleteCode(ctx context.Context, phone string) error {
	return s.client.Del(ctx, codeKeyPrefix+phone).Err()
}

// SetCooldown 은 재발송 제한 키를 건다. 이미 제한 중이면 false 를 반환한다.
func (s *RedisStore) SetCooldown(ctx context.Context, phone string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, cooldownKeyPrefix+phone, 1, ttl).Result()
}
