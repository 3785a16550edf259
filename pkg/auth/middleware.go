package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/ghuser/organcare/pkg/httpx"
	"github.com/ghuser/organcare/pkg/logger"
)

const sessionName = "organcare_session"
const sessionEditGrantKey = "edit_grant"

// IssueEditGrant records a single-use edit grant in the caller's session,
// replacing any grant issued earlier.
func IssueEditGrant(store sessions.Store, w http.ResponseWriter, r *http.Request, g EditGrant) error {
	// A tampered or stale cookie still yields a usable fresh session.
	session, err := store.Get(r, sessionName)
	if session == nil {
		return fmt.Errorf("open session: %w", err)
	}
	session.Values[sessionEditGrantKey] = g.RecordType + ":" + g.RecordID
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// RevokeEditGrant consumes the grant in the caller's session. Handlers call it
// once the edit it authorized has been committed.
func RevokeEditGrant(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if session == nil {
		return fmt.Errorf("open session: %w", err)
	}
	delete(session.Values, sessionEditGrantKey)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// RequireEditGrant is a chi middleware that only lets a request through when
// the session holds an edit grant for recordType and the id returned by
// recordID. Returns 403 Forbidden otherwise.
//
// After this middleware, handlers can safely call auth.EditGrantFromCtx(r.Context()).
func RequireEditGrant(store sessions.Store, log logger.Logger, recordType string, recordID func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusForbidden, map[string]string{"error": "edit not authorized"})
				return
			}

			raw, ok := session.Values[sessionEditGrantKey].(string)
			if !ok || raw == "" {
				log.WarnContext(r.Context(), "session missing edit grant")
				httpx.JSON(w, http.StatusForbidden, map[string]string{"error": "edit not authorized"})
				return
			}

			typ, id, _ := strings.Cut(raw, ":")
			grant := EditGrant{RecordType: typ, RecordID: id}
			if !grant.Matches(recordType, recordID(r)) {
				log.WarnContext(r.Context(), "edit grant does not cover record",
					"grant_type", typ, "grant_id", id, "record_type", recordType)
				httpx.JSON(w, http.StatusForbidden, map[string]string{"error": "edit not authorized"})
				return
			}

			ctx := WithEditGrant(r.Context(), grant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
