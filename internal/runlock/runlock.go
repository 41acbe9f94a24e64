// Package runlock keeps import runs from overlapping, inside one process and
// optionally across instances sharing a redis.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrHeld is returned when another run holds the lock.
var ErrHeld = errors.New("lock held by another run")

// Lock is a non-blocking mutual exclusion guard. Acquire returns ErrHeld
// instead of waiting.
type Lock interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Local is an in-process guard.
type Local struct {
	held atomic.Bool
}

func (l *Local) Acquire(ctx context.Context) (func(), error) {
	if !l.held.CompareAndSwap(false, true) {
		return nil, ErrHeld
	}
	return func() { l.held.Store(false) }, nil
}

// releaseScript deletes the key only when it still carries our token, so an
// expired lease never releases a lock taken over by another instance.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a lease shared by all instances using the same key. The TTL
// bounds how long a crashed holder blocks others.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedis(client *redis.Client, key string, ttl time.Duration) *Redis {
	return &Redis{client: client, key: key, ttl: ttl}
}

func (r *Redis) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, r.key, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", r.key, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		releaseScript.Run(ctx, r.client, []string{r.key}, token) //nolint:errcheck
	}, nil
}

// Chain acquires every lock in order and releases them in reverse.
type Chain []Lock

func (c Chain) Acquire(ctx context.Context) (func(), error) {
	var releases []func()
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, l := range c {
		release, err := l.Acquire(ctx)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}
