package client

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/target365/sdk-for-go/auth"
	"github.com/target365/sdk-for-go/metrics"
)

// serverKey is a fetched server public key with its parsed verifier.
type serverKey struct {
	key      *PublicKey
	verifier auth.Verifier
}

// keyCache holds server public keys. Concurrent misses for the same name
// share one fetch.
type keyCache struct {
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *metrics.Metrics

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]cachedKey
}

type cachedKey struct {
	key     *serverKey
	expires time.Time
}

type fetchFunc func(ctx context.Context, keyName string) (*serverKey, error)

func newKeyCache(ttl time.Duration, clock clockwork.Clock, m *metrics.Metrics) *keyCache {
	return &keyCache{
		ttl:     ttl,
		clock:   clock,
		metrics: m,
		entries: make(map[string]cachedKey),
	}
}

// get returns the key named keyName, fetching it when absent or older than
// the TTL. Validity periods are the caller's concern.
func (k *keyCache) get(ctx context.Context, keyName string, fetch fetchFunc) (*serverKey, error) {
	if k.ttl <= 0 {
		return fetch(ctx, keyName)
	}

	k.mu.RLock()
	entry, ok := k.entries[keyName]
	k.mu.RUnlock()

	if ok && k.clock.Now().Before(entry.expires) {
		k.metrics.IncKeyCacheHits()
		return entry.key, nil
	}

	k.metrics.IncKeyCacheMisses()

	// Detached from the starting caller's cancellation; the http.Client
	// timeout still bounds it.
	fetchCtx := context.WithoutCancel(ctx)

	ch := k.group.DoChan(keyName, func() (any, error) {
		key, err := fetch(fetchCtx, keyName)
		if err != nil {
			return nil, err
		}

		k.mu.Lock()
		k.entries[keyName] = cachedKey{key: key, expires: k.clock.Now().Add(k.ttl)}
		k.mu.Unlock()

		return key, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.(*serverKey), nil
	}
}

// purge drops every cached key.
func (k *keyCache) purge() {
	k.mu.Lock()
	clear(k.entries)
	k.mu.Unlock()
}
