// internal/api/handler/account.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"crowdfund-api/internal/auth"
	"crowdfund-api/internal/domain"
	"crowdfund-api/internal/service"
)

// AccountHandler handles registration, login and profile requests.
type AccountHandler struct {
	service service.AccountService
	logger  *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service: svc,
		logger:  logger,
	}
}

// RegisterRequest represents the request body for email registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RegisterWalletRequest represents the request body for wallet registration.
type RegisterWalletRequest struct {
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
}

// LoginRequest represents the request body for email login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginWalletRequest represents the request body for wallet login.
type LoginWalletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// AuthResponse carries a freshly issued token.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// Register handles POST /api/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusCreated, AuthResponse{Message: "User registered successfully", Token: token, User: user})
}

// RegisterWallet handles POST /api/register/wallet.
func (h *AccountHandler) RegisterWallet(w http.ResponseWriter, r *http.Request) {
	var req RegisterWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, token, err := h.service.RegisterWallet(r.Context(), req.WalletAddress, req.Name, req.Email, req.Role)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusCreated, AuthResponse{Message: "User registered successfully", Token: token, User: user})
}

// Login handles POST /api/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, AuthResponse{Message: "Login successful", Token: token, User: user})
}

// LoginWallet handles POST /api/login/wallet.
func (h *AccountHandler) LoginWallet(w http.ResponseWriter, r *http.Request) {
	var req LoginWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithMessage(h.logger, w, http.StatusBadRequest, "Wallet address is required")
		return
	}

	user, token, err := h.service.LoginWallet(r.Context(), req.WalletAddress)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, AuthResponse{Message: "Login successful", Token: token, User: user})
}

// Profile handles GET /api/profile.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithMessage(h.logger, w, http.StatusUnauthorized, "Authentication token required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	respondWithJSON(h.logger, w, http.StatusOK, user)
}
