package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RunLocker serializes writers on a key. The returned release func is safe to
// call more than once.
type RunLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

func RunLockKey(runID string) string {
	return "payroll:lock:run:" + runID
}

func ComputeLockKey(companyID, departmentID string, period Period) string {
	if departmentID == "" {
		departmentID = "all"
	}
	return fmt.Sprintf("payroll:lock:compute:%s:%s:%s", companyID, departmentID, period.Key())
}

type redisLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	retries int
}

// NewRedisLocker shares the lock across API instances. ttl bounds how long a
// crashed holder can block others.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration, retries int) RunLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisLocker{client: redislock.New(rdb), ttl: ttl, retries: retries}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), l.retries),
	}
	lock, err := l.client.Obtain(ctx, key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", payrollerrors.ErrRunBusy, key)
	}
	if err != nil {
		return nil, err
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(lock, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			_ = lock.Release(context.Background())
		})
	}, nil
}

// keepAlive extends the lock every half TTL while the holder is still working,
// so a long recompute cannot outlive it. It gives up once the lock is lost.
func (l *redisLocker) keepAlive(lock *redislock.Lock, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl/2)
			err := lock.Refresh(ctx, l.ttl, nil)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

type localLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker serializes writers inside one process.
func NewLocalLocker() RunLocker {
	return &localLocker{slots: make(map[string]*lockSlot)}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, slot)
		return nil, fmt.Errorf("%w: %v", payrollerrors.ErrRunBusy, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.drop(key, slot)
		})
	}, nil
}

func (l *localLocker) drop(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
