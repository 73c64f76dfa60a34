package keycloak

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// credentialExpiryMargin keeps us from sending a credential that would
// expire mid-flight.
const credentialExpiryMargin = 10 * time.Second

// serviceCredential is the cached service-account token. It is immutable
// once constructed; a refresh replaces the whole value.
type serviceCredential struct {
	accessToken string
	tokenType   string
	expiresAt   time.Time
}

func (c *serviceCredential) valid(now time.Time) bool {
	return c != nil && now.Before(c.expiresAt.Add(-credentialExpiryMargin))
}

// header formats the credential as an Authorization header value.
func (c *serviceCredential) header() string {
	return c.tokenType + " " + c.accessToken
}

// credentialCache holds the single shared service-account credential and
// refreshes it lazily. Concurrent callers racing a stale or absent
// credential collapse into one upstream fetch whose outcome, credential or
// error, is shared by every waiter. A failed fetch leaves the previously
// cached credential untouched.
type credentialCache struct {
	fetch func(ctx context.Context) (*serviceCredential, error)
	now   func() time.Time

	mu    sync.Mutex
	cur   *serviceCredential
	group singleflight.Group
}

func newCredentialCache(fetch func(ctx context.Context) (*serviceCredential, error)) *credentialCache {
	return &credentialCache{fetch: fetch, now: time.Now}
}

// acquire returns a valid service credential, fetching a fresh one if the
// cached credential is absent or inside its expiry margin.
func (c *credentialCache) acquire(ctx context.Context) (*serviceCredential, error) {
	c.mu.Lock()
	cur := c.cur
	c.mu.Unlock()
	if cur.valid(c.now()) {
		return cur, nil
	}

	v, err, _ := c.group.Do("service-account", func() (any, error) {
		// Another caller may have stored a fresh credential while we
		// waited on the group.
		c.mu.Lock()
		cur := c.cur
		c.mu.Unlock()
		if cur.valid(c.now()) {
			return cur, nil
		}

		cred, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cur = cred
		c.mu.Unlock()
		return cred, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*serviceCredential), nil
}
