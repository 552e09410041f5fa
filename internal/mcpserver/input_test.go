package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/jferrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocInput_ResolveContent(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	doc, err := docInput{Content: "name: base\nreplicas: 2\n"}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"name":"base","replicas":2}`, doc.String())
}

func TestDocInput_ResolveFile(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	doc, err := docInput{File: "../../inherit/testdata/base.yaml"}.resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, doc.IsObject())
	assert.True(t, doc.Has("service"))
}

func TestDocInput_ResolveNoneProvided(t *testing.T) {
	_, err := docInput{}.resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, jferrors.ErrConfig))
	assert.Contains(t, err.Error(), "one of file, url or content must be provided")
}

func TestDocInput_ResolveMultipleProvided(t *testing.T) {
	_, err := docInput{File: "foo.json", Content: "{}"}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one of file, url or content may be provided (got file or content)")
}

func TestDocInput_ResolveInlineTooLarge(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxInlineSize = 8 })

	_, err := docInput{Content: `{"name":"too long"}`}.resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, jferrors.ErrResourceLimit))
}

func TestDocInput_ResolveFileTooLarge(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxDocumentSize = 4 })

	path := filepath.Join(t.TempDir(), "big.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":"bcdef"}`), 0o600))

	_, err := docInput{File: path}.resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, jferrors.ErrResourceLimit))
}

func TestDocInput_ResolveURL(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.AllowPrivateIPs = true })

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"from":"remote"}`))
	}))
	defer srv.Close()

	in := docInput{URL: srv.URL + "/doc.json"}
	first, err := in.resolve(context.Background())
	require.NoError(t, err)
	second, err := in.resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `{"from":"remote"}`, first.String())
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), hits.Load(), "second resolve should hit the cache")
}

func TestDocInput_ResolveURL_NotHTTP(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	_, err := docInput{URL: "ftp://example.com/doc.json"}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only http and https are allowed")
}

func TestDocCache_HitOnSameContent(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	in := docInput{Content: `{"a":1}`}
	first, err := in.resolve(context.Background())
	require.NoError(t, err)
	second, err := in.resolve(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, docCache.size())
}

func TestDocCache_Disabled(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = false })

	_, err := docInput{Content: `{"a":1}`}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, docCache.size())
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	withConfig(t, func(*serverConfig) {})

	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"v":1}`), 0o600))

	first, err := docInput{File: path}.resolve(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"v":2}`), 0o600))
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := docInput{File: path}.resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `{"v":1}`, first.String())
	assert.Equal(t, `{"v":2}`, second.String())
}

func TestDocCache_LRUEviction(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}

	c.put("a", document.Int(1), 0)
	time.Sleep(time.Millisecond)
	c.put("b", document.Int(2), 0)
	time.Sleep(time.Millisecond)
	require.NotNil(t, c.get("a")) // touch a so b is oldest
	time.Sleep(time.Millisecond)
	c.put("c", document.Int(3), 0)

	assert.Equal(t, 2, c.size())
	assert.NotNil(t, c.get("a"))
	assert.Nil(t, c.get("b"))
	assert.NotNil(t, c.get("c"))
}

func TestDocCache_ExpiryAndSweep(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 10}

	c.put("short", document.Int(1), time.Millisecond)
	c.put("forever", document.Int(2), 0)
	time.Sleep(5 * time.Millisecond)

	c.sweep()
	assert.Equal(t, 1, c.size())
	assert.Nil(t, c.get("short"))
	assert.NotNil(t, c.get("forever"))
}

func TestDocCache_SweeperStopsOnCancel(t *testing.T) {
	c := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 10}
	c.put("short", document.Int(1), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	c.startSweeper(ctx, 2*time.Millisecond)
	c.startSweeper(ctx, 2*time.Millisecond) // second call is a no-op

	assert.Eventually(t, func() bool { return c.size() == 0 }, time.Second, 2*time.Millisecond)
	cancel()
	assert.Eventually(t, func() bool { return !c.sweeperStarted.Load() }, time.Second, 2*time.Millisecond)
}

func TestSessionRequester_LocalRefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parent.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"p":true}`), 0o600))

	t.Run("refused by default", func(t *testing.T) {
		withConfig(t, func(c *serverConfig) { c.AllowLocalRefs = false })
		req := &sessionRequester{}
		_, err := req.Request(context.Background(), path)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "JFATHER_ALLOW_LOCAL_REFS"))
		assert.Equal(t, int64(0), req.loaded.Load())
	})

	t.Run("allowed", func(t *testing.T) {
		withConfig(t, func(c *serverConfig) { c.AllowLocalRefs = true })
		req := &sessionRequester{}
		doc, err := req.Request(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, `{"p":true}`, doc.String())
		assert.Equal(t, int64(1), req.loaded.Load())
	})
}
