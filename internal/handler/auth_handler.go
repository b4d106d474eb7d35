package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dispatch-alerts-api/internal/auth"
	"dispatch-alerts-api/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name,omitempty"`
	Token     string `json:"token"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "all fields required"})
		return
	}
	if len(req.Password) < 8 {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "password too short"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	a := model.Account{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.accounts.Create(a); err != nil {
		// duplicate email, but don't reveal that
		h.log.Error("register failed", zap.Error(err))
		h.writeJSON(w, http.StatusConflict, errorBody{Message: "registration failed"})
		return
	}

	tok, err := auth.MakeToken(a.ID, h.secret)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tokenResponse{AccountID: a.ID, Token: tok})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "email and password required"})
		return
	}

	a, err := h.accounts.ByEmail(req.Email)
	if err != nil || !auth.CheckPassword(a.PasswordHash, req.Password) {
		h.writeJSON(w, http.StatusUnauthorized, errorBody{Message: "invalid credentials"})
		return
	}

	tok, err := auth.MakeToken(a.ID, h.secret)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tokenResponse{AccountID: a.ID, Name: a.Name, Token: tok})
}
