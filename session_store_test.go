package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolPortal/internal/services"
	"schoolPortal/internal/storage"
)

func TestCookieSessionKV(t *testing.T) {
	store := sessions.NewCookieStore([]byte(strings.Repeat("k", 32)))
	shared := storage.NewMemoryStore()

	w := httptest.NewRecorder()
	kv := newCookieSessionKV(store, shared, w, httptest.NewRequest("GET", "/", nil))

	require.NoError(t, kv.Set(services.SessionKey, `{"userId":1}`))
	require.NoError(t, kv.Set("users", "[]"))

	_, ok, err := shared.Get(services.SessionKey)
	require.NoError(t, err)
	assert.False(t, ok, "session must not reach the shared store")

	raw, ok, err := shared.Get("users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// A later request carrying the cookie sees the same session.
	next := httptest.NewRequest("GET", "/", nil)
	next.AddCookie(cookies[len(cookies)-1])
	kv2 := newCookieSessionKV(store, shared, httptest.NewRecorder(), next)
	raw, ok, err = kv2.Get(services.SessionKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"userId":1}`, raw)

	require.NoError(t, kv2.Remove(services.SessionKey))
	_, ok, err = kv2.Get(services.SessionKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
