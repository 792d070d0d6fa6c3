package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/trackly-app/trackly/internal/integrations/rates"
	"github.com/trackly-app/trackly/internal/service"
	"github.com/trackly-app/trackly/internal/utils"
)

// maxBodyBytes caps request bodies at 10 MB
const maxBodyBytes = 10 << 20

type Handler struct {
	svc   *service.Service
	rates *rates.Client
}

func NewHandler(svc *service.Service, ratesClient *rates.Client) *Handler {
	return &Handler{svc: svc, rates: ratesClient}
}

// respond writes a JSON payload with the given status
func respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondMessage writes a bare {message} envelope
func respondMessage(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"message": message})
}

// respondServerError writes the original API's 500 envelope
func respondServerError(w http.ResponseWriter, err error) {
	respond(w, http.StatusInternalServerError, map[string]string{
		"message": "Server error",
		"error":   err.Error(),
	})
}

// decodeBody parses a JSON request body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID extracts the numeric {id} route variable
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

// queryInt reads an integer query parameter with a default
func queryInt(r *http.Request, key string, defaultVal int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return defaultVal
	}
	return value
}

// parseDate accepts both a bare calendar date and a full timestamp
func parseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// NotFound is the JSON 404 for unknown routes
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusNotFound, "Route not found")
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = utils.SanitizeInput(req.Name)
	req.Email = utils.SanitizeInput(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !utils.ValidateEmail(req.Email) {
		respondMessage(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, user, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondMessage(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"data": map[string]interface{}{
			"token": token,
			"user":  user,
		},
	})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.CurrentUser(r.Context())
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "User not found")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "User data fetched successfully",
		"data":    map[string]interface{}{"user": user},
	})
}
