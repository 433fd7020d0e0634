package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

const dbErrorMessage = "Database error occurred."

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	reg := domain.Registration{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}
	if reg.FullName == "" || reg.Email == "" || reg.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	user, err := s.deps.Users.CreateUser(r.Context(), reg)
	switch {
	case errors.Is(err, domain.ErrEmailExists):
		writeMessage(w, http.StatusBadRequest, "Email already exists.")
		return
	case err != nil:
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	s.logger.Info("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusOK, userResponse{Message: "User registered successfully", User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, err := s.deps.Users.Authenticate(r.Context(), email, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Message: "Login successful", User: user})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required.")
		return
	}

	_, err := s.deps.Users.UserByEmail(r.Context(), email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Email not found")
		return
	case err != nil:
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	writeMessage(w, http.StatusOK, "Email found")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, "Email and new password are required.")
		return
	}

	err := s.deps.Users.ResetPassword(r.Context(), email, req.NewPassword)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		s.writeError(w, r, err, dbErrorMessage)
		return
	}
	writeMessage(w, http.StatusOK, "Password reset successfully")
}
