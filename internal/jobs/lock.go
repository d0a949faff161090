package jobs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"society-management-backend/internal/logger"
)

// Locker keeps two cronjob replicas from running the same job at once.
type Locker interface {
	Acquire(ctx context.Context, job string) (release func(), acquired bool, err error)
}

const lockPrefix = "society:job-lock:"

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	owner  string
}

// NewRedisLocker connects to Redis and verifies the connection
func NewRedisLocker(addr, password string, db int, ttl time.Duration) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	host, _ := os.Hostname()
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		owner:  host,
	}, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, job string) (func(), bool, error) {
	key := lockPrefix + job
	token := l.owner + ":" + uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// the job context may already be done
		if err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
			logger.Warn("Failed to release job lock", "job", job, "error", err)
		}
	}
	return release, true, nil
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}
