package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

const inboxErrorMessage = "Inbox error occurred."

func (s *Server) handleSaveToken(w http.ResponseWriter, r *http.Request) {
	var req saveTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, "Database error.")
		return
	}
	token := strings.TrimSpace(req.Token)
	if req.UserID <= 0 || token == "" {
		writeMessage(w, http.StatusBadRequest, "userId and token are required.")
		return
	}
	if !domain.IsExpoPushToken(token) {
		s.logger.Warn("saving token that is not an expo push token", "user_id", req.UserID)
	}

	err := s.deps.Users.SavePushToken(r.Context(), req.UserID, token)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found.")
		return
	case err != nil:
		s.writeError(w, r, err, "Database error.")
		return
	}
	writeMessage(w, http.StatusOK, "Token saved successfully.")
}

func (s *Server) handleSendPushAlert(w http.ResponseWriter, r *http.Request) {
	var req pushAlertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, "Database error.")
		return
	}
	if len(req.UserIDs) == 0 || strings.TrimSpace(req.Message) == "" {
		writeMessage(w, http.StatusBadRequest, "userIds (array) and message are required.")
		return
	}

	tokens, err := s.deps.Users.PushTokens(r.Context(), req.UserIDs)
	if err != nil {
		s.writeError(w, r, err, "Database error.")
		return
	}
	if len(tokens) == 0 {
		writeMessage(w, http.StatusNotFound, "No push tokens found for selected users.")
		return
	}

	msgs := domain.NewPushMessages(tokens, req.Message, req.Level, domain.Now())
	tickets, err := s.deps.Push.Send(r.Context(), msgs)
	if err != nil {
		s.logger.Error("send push alert failed", "users", len(req.UserIDs), "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to send push notifications.")
		return
	}
	if tickets == nil {
		tickets = []domain.PushTicket{}
	}
	writeJSON(w, http.StatusOK, pushAlertResponse{Message: "Push notifications sent.", Tickets: tickets})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	inbox, err := s.deps.Inbox.Inbox(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, newInboxResponse(inbox))
}

func (s *Server) handleAddNotification(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	var received domain.ReceivedNotification
	if err := decodeJSON(w, r, &received); err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	n, err := domain.NewNotification(received, domain.Now())
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}

	inbox, added, err := s.deps.Inbox.Add(r.Context(), userID, n)
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	resp := newInboxResponse(inbox)
	resp.Added = &added
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	inbox, found, err := s.deps.Inbox.MarkRead(r.Context(), userID, r.PathValue("nid"))
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, "Notification not found.")
		return
	}
	writeJSON(w, http.StatusOK, newInboxResponse(inbox))
}

func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	if err := s.deps.Inbox.Clear(r.Context(), userID); err != nil {
		s.writeError(w, r, err, inboxErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, newInboxResponse(nil))
}

func pathUserID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidArgument("user id must be a positive integer")
	}
	return id, nil
}
