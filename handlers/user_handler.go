package handlers

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/Ekhol/warbler/models"
	"github.com/Ekhol/warbler/monitoring"
	"github.com/Ekhol/warbler/repositories"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

// UserHandler handles the user directory, profiles and the follow graph
type UserHandler struct {
	users    repositories.UserRepository
	messages repositories.MessageRepository
	store    sessions.Store
}

func NewUserHandler(users repositories.UserRepository, messages repositories.MessageRepository, store sessions.Store) *UserHandler {
	return &UserHandler{users: users, messages: messages, store: store}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// List handles /users and /users?q=. Open to anonymous visitors.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	users, err := h.users.Search(query)
	if err != nil {
		logrus.WithError(err).Error("User search failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	lines := make([]string, 0, len(users))
	for _, user := range users {
		lines = append(lines, userLine(user.Username))
	}
	page(w, "Users", lines...)
}

// Show handles /users/{id}: the profile page with its three stat counters,
// in order: messages, following, followers. Open to anonymous visitors.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	user, err := h.users.ByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	messageCount, err := h.messages.CountByUser(id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	followingCount, err := h.users.FollowingCount(id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	followerCount, err := h.users.FollowerCount(id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	lines := []string{
		fmt.Sprintf("<h1>@%s</h1>", html.EscapeString(user.Username)),
		fmt.Sprintf(`<img src="%s" alt="profile image">`, html.EscapeString(user.ImageURL)),
		`<ul class="stats">`,
		statLine(messageCount),
		statLine(followingCount),
		statLine(followerCount),
		`</ul>`,
	}

	messages, err := h.messages.ByUser(id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	for _, msg := range messages {
		lines = append(lines, messageLine(msg.Text))
	}

	page(w, "@"+user.Username, lines...)
}

// Following handles /users/{id}/following. Only the user themselves may
// view their following list.
func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.relationshipView(w, r, h.users.Following, "Following")
}

// Followers handles /users/{id}/followers. Same guard as Following.
func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.relationshipView(w, r, h.users.Followers, "Followers")
}

// relationshipView implements the shared guard for follower/following
// pages: the session must exist and match the subject user.
func (h *UserHandler) relationshipView(w http.ResponseWriter, r *http.Request, fetch func(uint) ([]models.User, error), title string) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	me, ok := currentUserID(h.store, r)
	if !ok || me != id {
		unauthorized(h.store, w, r)
		return
	}

	users, err := fetch(id)
	if err != nil {
		logrus.WithError(err).Error("Relationship query failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	lines := make([]string, 0, len(users))
	for _, user := range users {
		lines = append(lines, userLine(user.Username))
	}
	page(w, title, lines...)
}

// Likes handles /users/{id}/likes: the messages the user has endorsed.
// Guarded like the relationship views.
func (h *UserHandler) Likes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	me, ok := currentUserID(h.store, r)
	if !ok || me != id {
		unauthorized(h.store, w, r)
		return
	}

	messages, err := h.users.Likes(id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, messageLine(msg.Text))
	}
	page(w, "Likes", lines...)
}

// Follow handles POST /users/follow/{id}: the session user starts following
// the target user.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUserID(h.store, r)
	if !ok {
		unauthorized(h.store, w, r)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, err := h.users.ByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	// A duplicate edge is treated as already done, but only a real insert
	// moves the counter.
	switch err := h.users.Follow(me, id); {
	case err == nil:
		monitoring.FollowsCreated.Inc()
	case !errors.Is(err, repositories.ErrDuplicate):
		logrus.WithError(err).Error("Follow failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/users/%d/following", me), http.StatusFound)
}

// StopFollowing handles POST /users/stop-following/{id}.
func (h *UserHandler) StopFollowing(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUserID(h.store, r)
	if !ok {
		unauthorized(h.store, w, r)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.users.Unfollow(me, id); err != nil {
		logrus.WithError(err).Error("Unfollow failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/users/%d/following", me), http.StatusFound)
}
