package locale

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/chattr"
	"github.com/ZaguanLabs/chattr/cache"
)

func TestCacheDictionary_Lookup(t *testing.T) {
	c := cache.NewInMemoryCache(time.Hour)
	c.Set(cache.Key("en_us", "gui.done"), "Done")
	c.Set(cache.Key("en_us", "key.jump"), "Jump")
	c.Set(cache.Key("de_de", "gui.done"), "Fertig")

	d := NewCacheDictionary(c, "en_US")

	v, ok := d.Lookup("gui.done", "de_DE")
	assert.True(t, ok)
	assert.Equal(t, "Fertig", v)

	v, ok = d.Lookup("key.jump", "de_de")
	assert.True(t, ok)
	assert.Equal(t, "Jump", v)

	_, ok = d.Lookup("missing", "de_de")
	assert.False(t, ok)
}

func TestCacheDictionary_NoDefault(t *testing.T) {
	c := cache.NewInMemoryCache(0)
	c.Set(cache.Key("en_us", "gui.done"), "Done")

	d := NewCacheDictionary(c, "")

	_, ok := d.Lookup("gui.done", "de_de")
	assert.False(t, ok)
}

func TestPublish_InMemory(t *testing.T) {
	store := NewStore("en_us")
	store.Add("en_us", MapTable{"gui.done": "Done"})
	store.Add("de_de", MapTable{"gui.done": "Fertig", "key.jump": "Springen"})

	c := cache.NewInMemoryCache(0)
	n, err := Publish(context.Background(), store, c)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	d := NewCacheDictionary(c, store.DefaultLocale())
	v, _ := d.Lookup("key.jump", "de_de")
	assert.Equal(t, "Springen", v)
}

func TestPublish_Redis(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	store := NewStore("en_us")
	store.Add("en_us", MapTable{"gui.done": "Done"})
	store.Add("de_de", MapTable{"gui.done": "Fertig"})

	mock.ExpectSet("chattr:de_de:gui.done", "Fertig", 0).SetVal("OK")
	mock.ExpectSet("chattr:en_us:gui.done", "Done", 0).SetVal("OK")

	n, err := Publish(context.Background(), store, cache.NewRedisCacheFromClient(db, 0, ""))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublish_Cancelled(t *testing.T) {
	store := NewStore("en_us")
	store.Add("en_us", MapTable{"gui.done": "Done"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Publish(ctx, store, cache.NewInMemoryCache(0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCachedDictionary(t *testing.T) {
	calls := 0
	inner := chattr.DictionaryFunc(func(key, locale string) (string, bool) {
		calls++
		if key == "gui.done" {
			return "Done", true
		}
		return "", false
	})

	d := NewCachedDictionary(inner, cache.NewInMemoryCache(time.Hour))

	for i := 0; i < 3; i++ {
		v, ok := d.Lookup("gui.done", "en_us")
		assert.True(t, ok)
		assert.Equal(t, "Done", v)

		_, ok = d.Lookup("missing", "en_us")
		assert.False(t, ok)
	}

	assert.Equal(t, 2, calls, "hits and misses should both be cached")
}

type failingCache struct{}

func (failingCache) Get(string) (string, bool) { return "", false }

func (failingCache) Set(string, string) error { return errors.New("cache unavailable") }

func TestCachedDictionary_SetFailure(t *testing.T) {
	inner := chattr.DictionaryFunc(func(key, locale string) (string, bool) {
		if key == "gui.done" {
			return "Done", true
		}
		return "", false
	})

	var buf bytes.Buffer
	d := NewCachedDictionary(inner, failingCache{}, WithCacheLogger(zerolog.New(&buf)))

	v, ok := d.Lookup("gui.done", "en_us")
	assert.True(t, ok)
	assert.Equal(t, "Done", v)

	_, ok = d.Lookup("missing", "en_us")
	assert.False(t, ok)

	out := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "cache unavailable")
	assert.Contains(t, out, `"key":"missing"`)
}
