package handlers

import (
	"net/http"

	"github.com/Ekhol/warbler/monitoring"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie holding the authenticated session.
const SessionName = "warbler-session"

// CurrUserKey is the single key kept in session state: the authenticated
// user's ID. Absence means the request is anonymous.
const CurrUserKey = "curr_user"

const accessUnauthorized = "Access unauthorized."

// NewSessionStore builds the cookie store backing the session guard.
func NewSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
	}
	return store
}

// currentUserID reads the authenticated user from session state. ok is
// false for anonymous requests.
func currentUserID(store sessions.Store, r *http.Request) (uint, bool) {
	sess, err := store.Get(r, SessionName)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[CurrUserKey].(uint)
	return id, ok
}

func setCurrentUser(store sessions.Store, w http.ResponseWriter, r *http.Request, id uint) error {
	sess, _ := store.Get(r, SessionName)
	sess.Values[CurrUserKey] = id
	return sess.Save(r, w)
}

func clearCurrentUser(store sessions.Store, w http.ResponseWriter, r *http.Request) {
	sess, _ := store.Get(r, SessionName)
	delete(sess.Values, CurrUserKey)
	sess.Save(r, w)
}

// unauthorized refuses a guarded operation: flash the standard message and
// send the caller back to the landing page. No state is mutated.
func unauthorized(store sessions.Store, w http.ResponseWriter, r *http.Request) {
	monitoring.UnauthorizedAccess.Inc()
	sess, _ := store.Get(r, SessionName)
	sess.AddFlash(accessUnauthorized)
	sess.Save(r, w)
	http.Redirect(w, r, "/", http.StatusFound)
}
