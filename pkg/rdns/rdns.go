// Package rdns resolves reply sources to display names through cached
// reverse DNS lookups.
package rdns

import (
	"context"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Resolver maps an address to a display name. Implementations must be
// safe for concurrent use.
type Resolver interface {
	Lookup(addr netip.Addr) string
}

// Literal is the no-resolution resolver: every address renders as itself.
type Literal struct{}

func (Literal) Lookup(addr netip.Addr) string {
	return addr.String()
}

// lookupAddr is swapped out in tests.
var lookupAddr = func(ctx context.Context, addr string) ([]string, error) {
	return net.DefaultResolver.LookupAddr(ctx, addr)
}

// Cache resolves PTR records and remembers the outcome, misses included,
// so a steady reply stream costs one lookup per TTL window instead of one
// per reply.
type Cache struct {
	cache   *ttlcache.Cache[netip.Addr, string]
	timeout time.Duration
}

// NewCache returns a resolving cache whose entries expire after ttl.
// Individual lookups are abandoned after timeout and cached as misses.
func NewCache(ttl, timeout time.Duration) *Cache {
	c := &Cache{
		cache:   ttlcache.New(ttlcache.WithTTL[netip.Addr, string](ttl)),
		timeout: timeout,
	}
	go c.cache.Start()
	return c
}

// Lookup returns the PTR name for addr, or the literal address when
// nothing resolves.
func (c *Cache) Lookup(addr netip.Addr) string {
	if item := c.cache.Get(addr); item != nil {
		if name := item.Value(); name != "" {
			return name
		}
		return addr.String()
	}

	name := ""
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if names, err := lookupAddr(ctx, addr.String()); err == nil && len(names) > 0 {
		name = normalize(names[0])
	}
	c.cache.Set(addr, name, ttlcache.DefaultTTL)

	if name == "" {
		return addr.String()
	}
	return name
}

// Stop ends the cache's expiry loop.
func (c *Cache) Stop() {
	c.cache.Stop()
}

// normalize strips the trailing dot from a PTR answer.
func normalize(name string) string {
	return strings.TrimSuffix(name, ".")
}
