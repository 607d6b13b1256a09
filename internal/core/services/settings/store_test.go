package settings

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulniq/vulniq/internal/core/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestStore_PartialUpdate(t *testing.T) {
	store := NewStore(domain.Settings{
		AccessKey:  "ak-original",
		SecretKey:  "sk-original",
		BaseURL:    "https://cloud.example.com",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	})

	updated := store.Update(domain.SettingsPatch{AccessKey: strPtr("ak-new")})

	assert.Equal(t, "ak-new", updated.AccessKey)
	assert.Equal(t, "sk-original", updated.SecretKey, "untouched fields must survive a partial update")
	assert.Equal(t, "https://cloud.example.com", updated.BaseURL)
	assert.Equal(t, 3, updated.MaxRetries)
}

func TestStore_UpdatePublishesNewSnapshot(t *testing.T) {
	store := NewStore(domain.Settings{BaseURL: "https://a.example.com"})

	before := store.Snapshot()
	store.Update(domain.SettingsPatch{BaseURL: strPtr("https://b.example.com")})
	after := store.Snapshot()

	assert.Equal(t, "https://a.example.com", before.BaseURL, "old snapshot must stay immutable")
	assert.Equal(t, "https://b.example.com", after.BaseURL)
}

func TestStore_TimeoutMillisConversion(t *testing.T) {
	store := NewStore(domain.Settings{})

	updated := store.Update(domain.SettingsPatch{TimeoutMillis: intPtr(2500)})

	assert.Equal(t, 2500*time.Millisecond, updated.Timeout)
}

// Concurrent updates of disjoint fields must all land: the write lock
// serializes merges so no update reads a stale base snapshot.
func TestStore_ConcurrentUpdatesDoNotLoseFields(t *testing.T) {
	store := NewStore(domain.Settings{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			store.Update(domain.SettingsPatch{AccessKey: strPtr("ak")})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			store.Update(domain.SettingsPatch{SecretKey: strPtr("sk")})
		}
	}()
	wg.Wait()

	snap := store.Snapshot()
	require.Equal(t, "ak", snap.AccessKey)
	require.Equal(t, "sk", snap.SecretKey)
}

func TestSettings_Redacted(t *testing.T) {
	s := domain.Settings{
		AccessKey:  "ak",
		BaseURL:    "https://cloud.example.com",
		Timeout:    5 * time.Second,
		MaxRetries: 2,
	}

	view := s.Redacted()

	assert.Equal(t, true, view["accessKeySet"])
	assert.Equal(t, false, view["secretKeySet"])
	assert.Equal(t, 5000, view["timeoutMillis"])
	assert.NotContains(t, view, "accessKey")
	assert.NotContains(t, view, "secretKey")
}
