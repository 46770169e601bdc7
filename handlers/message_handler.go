package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ekhol/warbler/monitoring"
	"github.com/Ekhol/warbler/repositories"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const messageForm = `<form method="POST" action="/messages/new">
<textarea name="text" maxlength="140"></textarea>
<button type="submit">Add my message!</button>
</form>`

// MessageHandler handles posting, viewing, deleting and liking messages
type MessageHandler struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
	store    sessions.Store
}

func NewMessageHandler(messages repositories.MessageRepository, users repositories.UserRepository, store sessions.Store) *MessageHandler {
	return &MessageHandler{messages: messages, users: users, store: store}
}

// New handles GET (form) and POST (create) for /messages/new. Anonymous
// requests are refused before any parsing happens.
func (h *MessageHandler) New(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUserID(h.store, r)
	if !ok {
		unauthorized(h.store, w, r)
		return
	}

	if r.Method == http.MethodGet {
		page(w, "New message", messageForm)
		return
	}

	text := r.FormValue("text")
	msg, err := h.messages.Create(me, text)
	if errors.Is(err, repositories.ErrValidation) {
		w.WriteHeader(http.StatusBadRequest)
		page(w, "New message", errorLine("Message text must be between 1 and 140 characters."), messageForm)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Message create failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	monitoring.MessagesPosted.Inc()
	logrus.WithFields(logrus.Fields{"user_id": me, "message_id": msg.ID}).Info("Message posted")
	http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
}

// Show handles GET /messages/{id}. A session is required; unknown ids are
// a plain 404.
func (h *MessageHandler) Show(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(h.store, r); !ok {
		unauthorized(h.store, w, r)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	msg, err := h.messages.ByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	page(w, "Message", messageLine(msg.Text), userLine(msg.User.Username))
}

// Delete handles POST /messages/{id}/delete. Only the owner may delete;
// anyone else is refused and the row stays untouched.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	err = h.messages.Delete(id, me)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, repositories.ErrForbidden):
		logrus.WithFields(logrus.Fields{"user_id": me, "message_id": id}).Warn("Delete refused: not the owner")
		unauthorized(h.store, w, r)
		return
	case err != nil:
		logrus.WithError(err).Error("Message delete failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	monitoring.MessagesDeleted.Inc()
	http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
}

// Like handles POST /messages/{id}/like, toggling the session user's like
// on the message.
func (h *MessageHandler) Like(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.messages.ByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	liked, err := h.users.HasLiked(me, id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if liked {
		err = h.users.Unlike(me, id)
	} else {
		err = h.users.Like(me, id)
	}
	if err != nil {
		logrus.WithError(err).Error("Like toggle failed")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/users/%d/likes", me), http.StatusFound)
}
