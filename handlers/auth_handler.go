package handlers

import (
	"errors"
	"net/http"

	"github.com/Ekhol/warbler/monitoring"
	"github.com/Ekhol/warbler/repositories"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const signupForm = `<form method="POST" action="/signup">
<input name="username"><input name="email"><input name="password" type="password"><input name="image_url">
<button type="submit">Sign me up!</button>
</form>`

const loginForm = `<form method="POST" action="/login">
<input name="username"><input name="password" type="password">
<button type="submit">Log in</button>
</form>`

// AuthHandler handles signup, login, logout and the landing page
type AuthHandler struct {
	users repositories.UserRepository
	store sessions.Store
}

func NewAuthHandler(users repositories.UserRepository, store sessions.Store) *AuthHandler {
	return &AuthHandler{users: users, store: store}
}

// Home renders the public landing page along with any pending flash
// messages. Guard failures redirect here, so this is where
// "Access unauthorized." becomes visible after a redirect-follow.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.store.Get(r, SessionName)
	lines := flashLines(sess.Flashes())
	sess.Save(r, w)

	lines = append(lines, "<h1>Warbler</h1>")
	if _, ok := currentUserID(h.store, r); !ok {
		lines = append(lines, `<p><a href="/signup">Sign up</a> or <a href="/login">log in</a></p>`)
	}
	page(w, "Warbler", lines...)
}

// Signup handles GET (form) and POST (create account) for /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		page(w, "Join Warbler", signupForm)
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	imageURL := r.FormValue("image_url")

	user, err := h.users.Signup(username, email, password, imageURL)
	switch {
	case errors.Is(err, repositories.ErrValidation):
		w.WriteHeader(http.StatusBadRequest)
		page(w, "Join Warbler", errorLine("You have to enter a username, email and password."), signupForm)
		return
	case errors.Is(err, repositories.ErrDuplicate):
		logrus.WithField("username", username).Warn("Signup rejected: username or email taken")
		w.WriteHeader(http.StatusBadRequest)
		page(w, "Join Warbler", errorLine("Username or email already taken."), signupForm)
		return
	case err != nil:
		logrus.WithError(err).Error("Signup failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := setCurrentUser(h.store, w, r, user.ID); err != nil {
		logrus.WithError(err).Error("Failed to save session after signup")
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	monitoring.SignupSuccess.Inc()
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User signed up")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Login handles GET (form) and POST (authenticate) for /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		page(w, "Log in", loginForm)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.users.Authenticate(username, password)
	if errors.Is(err, repositories.ErrNotFound) {
		monitoring.LoginFailure.WithLabelValues("bad_credentials").Inc()
		logrus.WithField("username", username).Warn("Login attempt failed")
		w.WriteHeader(http.StatusUnauthorized)
		page(w, "Log in", errorLine("Invalid credentials."), loginForm)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Login failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := setCurrentUser(h.store, w, r, user.ID); err != nil {
		logrus.WithError(err).Error("Failed to save session after login")
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	monitoring.LoginSuccess.Inc()
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User logged in")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session and returns to the landing page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearCurrentUser(h.store, w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
