package main

import (
	"net/http"

	"github.com/gorilla/sessions"

	"schoolPortal/internal/services"
	"schoolPortal/internal/storage"
)

const sessionDataKey = "session_data"

// cookieSessionKV keeps the session record in the browser's signed cookie
// so that every browser has its own login. Any other key goes to shared.
type cookieSessionKV struct {
	session *sessions.Session
	shared  storage.KV
	r       *http.Request
	w       http.ResponseWriter
}

func newCookieSessionKV(store sessions.Store, shared storage.KV, w http.ResponseWriter, r *http.Request) *cookieSessionKV {
	session, err := store.Get(r, services.SessionKey)
	if err != nil {
		// A cookie signed with an old secret decodes to a fresh session.
		AppLogger.WithError(err).Debug("Ignoring unreadable session cookie")
	}
	return &cookieSessionKV{session: session, shared: shared, r: r, w: w}
}

func (kv *cookieSessionKV) Get(key string) (string, bool, error) {
	if key != services.SessionKey {
		return kv.shared.Get(key)
	}
	value, ok := kv.session.Values[sessionDataKey].(string)
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (kv *cookieSessionKV) Set(key, value string) error {
	if key != services.SessionKey {
		return kv.shared.Set(key, value)
	}
	kv.session.Values[sessionDataKey] = value
	return kv.session.Save(kv.r, kv.w)
}

func (kv *cookieSessionKV) Remove(key string) error {
	if key != services.SessionKey {
		return kv.shared.Remove(key)
	}
	if _, ok := kv.session.Values[sessionDataKey]; !ok {
		return nil
	}
	delete(kv.session.Values, sessionDataKey)
	return kv.session.Save(kv.r, kv.w)
}
