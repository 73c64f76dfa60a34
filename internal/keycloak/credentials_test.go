package keycloak

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCredentialCacheReuse(t *testing.T) {
	ctx := context.Background()
	var fetches int32
	cache := newCredentialCache(func(ctx context.Context) (*serviceCredential, error) {
		atomic.AddInt32(&fetches, 1)
		return &serviceCredential{
			accessToken: "tok",
			tokenType:   "Bearer",
			expiresAt:   time.Now().Add(time.Hour),
		}, nil
	})

	first, err := cache.acquire(ctx)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		cred, err := cache.acquire(ctx)
		if err != nil {
			t.Fatalf("acquire %d failed: %v", i, err)
		}
		if cred != first {
			t.Fatalf("acquire %d returned a different credential", i)
		}
	}
	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Fatalf("expected exactly 1 fetch, got %d", n)
	}
}

func TestCredentialCacheRefreshAfterExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	var fetches int32
	cache := newCredentialCache(func(ctx context.Context) (*serviceCredential, error) {
		n := atomic.AddInt32(&fetches, 1)
		return &serviceCredential{
			accessToken: "tok-" + string(rune('0'+n)),
			tokenType:   "Bearer",
			expiresAt:   now.Add(time.Minute),
		}, nil
	})
	cache.now = func() time.Time { return now }

	first, err := cache.acquire(ctx)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	// Still inside the validity window, minus the safety margin.
	now = now.Add(time.Minute - credentialExpiryMargin - time.Second)
	cache.now = func() time.Time { return now }
	cred, err := cache.acquire(ctx)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if cred != first {
		t.Fatal("credential refreshed before expiry margin")
	}

	// Inside the margin: must be treated as stale.
	now = now.Add(2 * time.Second)
	cache.now = func() time.Time { return now }
	cred, err = cache.acquire(ctx)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if cred == first {
		t.Fatal("stale credential was not refreshed")
	}
	if n := atomic.LoadInt32(&fetches); n != 2 {
		t.Fatalf("expected 2 fetches, got %d", n)
	}
}

func TestCredentialCacheNoRefreshStorm(t *testing.T) {
	ctx := context.Background()
	var fetches int32
	cache := newCredentialCache(func(ctx context.Context) (*serviceCredential, error) {
		atomic.AddInt32(&fetches, 1)
		// Give the other goroutines time to pile up on the fetch.
		time.Sleep(50 * time.Millisecond)
		return &serviceCredential{
			accessToken: "tok",
			tokenType:   "Bearer",
			expiresAt:   time.Now().Add(time.Hour),
		}, nil
	})

	const n = 50
	creds := make([]*serviceCredential, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cred, err := cache.acquire(ctx)
			if err != nil {
				t.Errorf("acquire %d failed: %v", i, err)
				return
			}
			creds[i] = cred
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&fetches); got != 1 {
		t.Fatalf("expected exactly 1 fetch under %d concurrent callers, got %d", n, got)
	}
	for i := 1; i < n; i++ {
		if creds[i] != creds[0] {
			t.Fatalf("caller %d received a different credential", i)
		}
	}
}

func TestCredentialCacheFetchFailure(t *testing.T) {
	ctx := context.Background()
	fetchErr := errors.New("token endpoint down")
	fail := true
	cache := newCredentialCache(func(ctx context.Context) (*serviceCredential, error) {
		if fail {
			return nil, fetchErr
		}
		return &serviceCredential{
			accessToken: "tok",
			tokenType:   "Bearer",
			expiresAt:   time.Now().Add(time.Hour),
		}, nil
	})

	if _, err := cache.acquire(ctx); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	// The cache must not be poisoned with a partial credential.
	cache.mu.Lock()
	cur := cache.cur
	cache.mu.Unlock()
	if cur != nil {
		t.Fatal("failed fetch left a credential behind")
	}

	fail = false
	cred, err := cache.acquire(ctx)
	if err != nil {
		t.Fatalf("acquire after recovery failed: %v", err)
	}
	if cred.accessToken != "tok" {
		t.Fatalf("unexpected credential %q", cred.accessToken)
	}
}

func TestCredentialCacheFailedRefreshKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	stale := &serviceCredential{
		accessToken: "old",
		tokenType:   "Bearer",
		expiresAt:   time.Now().Add(-time.Minute),
	}
	cache := newCredentialCache(func(ctx context.Context) (*serviceCredential, error) {
		return nil, errors.New("boom")
	})
	cache.cur = stale

	if _, err := cache.acquire(ctx); err == nil {
		t.Fatal("expected refresh failure")
	}
	cache.mu.Lock()
	cur := cache.cur
	cache.mu.Unlock()
	if cur != stale {
		t.Fatal("failed refresh replaced the prior credential")
	}
}
