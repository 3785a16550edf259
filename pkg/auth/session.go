// Package auth keeps the sessions that carry edit grants issued by the
// protected-action gate.
//
// Auth keys are 32 or 64 bytes (HMAC) and encryption keys 16, 24 or 32 bytes
// (AES). Generate production keys with:
//
//	openssl rand -base64 32
package auth

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "organcare:session:"

// DefaultSessionMaxAge applies when SessionOptions.MaxAge is zero.
const DefaultSessionMaxAge = 12 * time.Hour

// SessionOptions configures both session stores.
type SessionOptions struct {
	AuthKey       []byte
	EncryptionKey []byte
	// Secure restricts the cookie to HTTPS. Set it in production.
	Secure bool
	MaxAge time.Duration
}

func (o SessionOptions) cookie() *sessions.Options {
	maxAge := o.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewCookieStore keeps session values encrypted in the cookie itself. It is
// used when no Redis is configured.
func NewCookieStore(opts SessionOptions) sessions.Store {
	store := sessions.NewCookieStore(opts.AuthKey, opts.EncryptionKey)
	store.Options = opts.cookie()
	return store
}

// RedisStore keeps session values in Redis under "organcare:session:<id>",
// gob-encoded, with a TTL of the session MaxAge. The cookie holds only the
// encrypted id.
type RedisStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewSessionStore returns a Redis-backed store.
func NewSessionStore(client *redis.Client, opts SessionOptions) *RedisStore {
	return &RedisStore{
		client:  client,
		codecs:  securecookie.CodecsFromPairs(opts.AuthKey, opts.EncryptionKey),
		options: opts.cookie(),
	}
}

// Get returns the request's cached session for name.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered or
// expired cookie, or a session gone from Redis, yields a fresh session and no
// error, so a lost session only costs the holder their grant.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	id, ok := s.decodeID(r, name)
	if !ok {
		return session, nil
	}
	values, err := s.load(r.Context(), id)
	if err != nil {
		return session, nil
	}
	session.ID = id
	session.Values = values
	session.IsNew = false
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), redisKey(session.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.store(r.Context(), session.ID, session.Values, ttl); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) decodeID(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return "", false
	}
	return id, id != ""
}

func (s *RedisStore) store(ctx context.Context, id string, values map[any]any, ttl time.Duration) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(id), buf.Bytes(), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

var errSessionGone = errors.New("session not in redis")

func (s *RedisStore) load(ctx context.Context, id string) (map[any]any, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errSessionGone
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	values := make(map[any]any)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode session values: %w", err)
	}
	return values, nil
}

func redisKey(id string) string {
	return sessionKeyPrefix + id
}
