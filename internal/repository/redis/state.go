// Package redis keeps dialogue state in Redis so several bot instances can share it.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vibetracker/internal/domain"
	"vibetracker/internal/repository"

	backend "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultPrefix  = "vibetracker:"
	defaultLockTTL = 10 * time.Second
	lockRetry      = 20 * time.Millisecond
)

var unlockScript = backend.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// StateStore implements repository.StateStore using Redis
type StateStore struct {
	client  *backend.Client
	prefix  string
	ttl     time.Duration
	lockTTL time.Duration
	logger  *zap.Logger
}

// Option configures a StateStore
type Option func(*StateStore)

// WithPrefix sets the key prefix
func WithPrefix(prefix string) Option {
	return func(s *StateStore) {
		s.prefix = prefix
	}
}

// WithTTL expires idle flows after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *StateStore) {
		s.ttl = ttl
	}
}

// WithLogger sets the logger used for discarded state values
func WithLogger(logger *zap.Logger) Option {
	return func(s *StateStore) {
		s.logger = logger
	}
}

// WithLockTTL bounds how long a crashed holder can keep a user locked
func WithLockTTL(ttl time.Duration) Option {
	return func(s *StateStore) {
		s.lockTTL = ttl
	}
}

// NewStateStore creates a store on top of an existing client
func NewStateStore(client *backend.Client, opts ...Option) *StateStore {
	s := &StateStore{
		client:  client,
		prefix:  defaultPrefix,
		lockTTL: defaultLockTTL,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *StateStore) stateKey(userKey int64) string {
	return s.prefix + "state:" + strconv.FormatInt(userKey, 10)
}

func (s *StateStore) lockKey(userKey int64) string {
	return s.prefix + "lock:" + strconv.FormatInt(userKey, 10)
}

// Load returns the stored state, or nil when the user is idle
func (s *StateStore) Load(ctx context.Context, userKey int64) (*domain.DialogueState, error) {
	val, err := s.client.Get(ctx, s.stateKey(userKey)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get state: %w", domain.ErrStoreUnavailable, err)
	}

	var state domain.DialogueState
	if err := json.Unmarshal(val, &state); err != nil {
		// Undecodable values are dropped and the user restarts idle
		s.logger.Warn("Discarding undecodable dialogue state",
			zap.Int64("user_id", userKey),
			zap.Error(err),
		)
		if err := s.client.Del(ctx, s.stateKey(userKey)).Err(); err != nil {
			return nil, fmt.Errorf("%w: delete state: %w", domain.ErrStoreUnavailable, err)
		}
		return nil, nil
	}

	return &state, nil
}

// Save overwrites the stored state
func (s *StateStore) Save(ctx context.Context, state domain.DialogueState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := s.client.Set(ctx, s.stateKey(state.UserKey), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set state: %w", domain.ErrStoreUnavailable, err)
	}

	return nil
}

// Clear deletes the stored state. Deleting a missing key is not an error.
func (s *StateStore) Clear(ctx context.Context, userKey int64) error {
	if err := s.client.Del(ctx, s.stateKey(userKey)).Err(); err != nil {
		return fmt.Errorf("%w: delete state: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Lock acquires the per-user lock with SET NX PX, polling until ctx is done
func (s *StateStore) Lock(ctx context.Context, userKey int64) (repository.UnlockFunc, error) {
	key := s.lockKey(userKey)
	val := strconv.FormatInt(time.Now().UnixNano(), 10)

	ticker := time.NewTicker(lockRetry)
	defer ticker.Stop()

	for {
		ok, err := s.client.SetNX(ctx, key, val, s.lockTTL).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: acquire lock: %w", domain.ErrStoreUnavailable, err)
		}
		if ok {
			return func(ctx context.Context) error {
				return unlockScript.Run(ctx, s.client, []string{key}, val).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close closes the redis client
func (s *StateStore) Close() error {
	return s.client.Close()
}
