package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/roberrrrrr/App-Activo-Entrena/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc *Service
	log *logrus.Logger
}

func NewHandler(svc *Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Login validates credentials against the store.
// Responds 401 with an identical body for unknown-user and
// wrong-password, 400 before the store is consulted on bad input, and
// 500 without internal detail when the store is unreachable.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if strings.TrimSpace(req.UserName) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "userName y password son requeridos")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
			return
		}
		h.log.WithError(err).Error("login: credential store failure")
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		Message: "Login exitoso",
		User: models.UserResponse{
			ID:       strconv.FormatInt(user.ID, 10),
			Username: user.Username,
		},
	})
}

// Register creates a new user with a hashed credential.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}
	if strings.TrimSpace(req.UserName) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "userName y password son requeridos")
		return
	}

	user, err := h.svc.Register(r.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			writeError(w, http.StatusBadRequest, "El nombre de usuario ya está en uso.")
			return
		}
		h.log.WithError(err).Error("register: credential store failure")
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	writeJSON(w, http.StatusCreated, models.RegisterResponse{
		Success:  true,
		Message:  "Registro exitoso. Usuario creado.",
		UserID:   user.ID,
		Username: user.Username,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}
