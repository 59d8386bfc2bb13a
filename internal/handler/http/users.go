package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
)

// loginRequest accepts the login identifier under any of the field names
// clients historically used. Identifier wins when several are set.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	UserName   string `json:"userName"`
	Password   string `json:"password"`
}

func (l loginRequest) identifier() string {
	switch {
	case l.Identifier != "":
		return l.Identifier
	case l.Email != "":
		return l.Email
	default:
		return l.UserName
	}
}

type emailCheckRequest struct {
	Email string `json:"email"`
}

type userNameCheckRequest struct {
	UserName string `json:"userName"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
	Password    string `json:"password"`
}

// password tolerates both body shapes: newPassword is the canonical field,
// password is accepted as a fallback.
func (r resetPasswordRequest) password() string {
	if r.NewPassword != "" {
		return r.NewPassword
	}
	return r.Password
}

// respondError logs err and writes the mapped JSON error envelope.
// Internal failures are reported with a generic message; the underlying
// error stays in the logs.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	log.Err(err).Msg(msg)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		writeError(w, http.StatusText(status), status, "")
		return
	}
	writeError(w, err.Error(), status, codeFromStatus(status))
}

// tokenUserID extracts the caller's user ID from the context token attached
// by the auth middleware. A missing or unparsable subject means the gate
// was bypassed or the token was issued with a foreign subject; either way
// the request is rejected.
func (h *Handler) tokenUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	log := logger.FromRequest(r)

	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		log.Error().Msg("no token in request context on a gated route")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized, "")
		return 0, false
	}

	userID, err := token.GetUserID()
	if err != nil {
		log.Err(err).Msg("token subject is not a user id")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized, "")
		return 0, false
	}

	return userID, true
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists), errors.Is(err, store.ErrUserNameAlreadyExists):
			log.Err(err).Msg("registration conflict")
			writeError(w, err.Error(), http.StatusConflict, "CONFLICT")
			return
		case statusFromError(err) == http.StatusBadRequest:
			log.Err(err).Msg("invalid registration data")
			writeError(w, err.Error(), http.StatusBadRequest, "")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError, "")
			return
		}
	}

	log.Debug().Int64("id", registeredUser.UserID).Str("userName", registeredUser.UserName).Msg("user registered")

	utils.WriteJSON(w, models.RegisterResponse{
		Message: "User registered successfully",
		User:    registeredUser.Public(),
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.identifier(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			writeError(w, err.Error(), http.StatusBadRequest, "")
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("login rejected")
			writeError(w, err.Error(), http.StatusUnauthorized, "")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError, "")
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError, "")
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		Message: "Login successful",
		Access:  token.SignedString,
	}, http.StatusOK)
}

func (h *Handler) checkEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req emailCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	email, available, err := h.services.AuthService.CheckEmail(ctx, req.Email)
	if err != nil {
		h.respondError(w, r, err, "email availability check failed")
		return
	}

	utils.WriteJSON(w, models.EmailCheckResponse{Email: email, Available: available}, http.StatusOK)
}

func (h *Handler) checkUserName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req userNameCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	userName, available, err := h.services.AuthService.CheckUserName(ctx, req.UserName)
	if err != nil {
		h.respondError(w, r, err, "username availability check failed")
		return
	}

	utils.WriteJSON(w, models.UserNameCheckResponse{UserName: userName, Available: available}, http.StatusOK)
}

func (h *Handler) userDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.tokenUserID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		h.respondError(w, r, err, "user details lookup failed")
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.tokenUserID(w, r)
	if !ok {
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	updated, err := h.services.AuthService.UpdateProfile(ctx, userID, update)
	if err != nil {
		h.respondError(w, r, err, "profile update failed")
		return
	}

	utils.WriteJSON(w, models.UpdateUserResponse{
		Message: "Profile updated successfully",
		User:    updated.Public(),
	}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.tokenUserID(w, r)
	if !ok {
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, userID, req.password()); err != nil {
		h.respondError(w, r, err, "password reset failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "Password updated successfully"}, http.StatusOK)
}

func (h *Handler) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var update models.AdminUserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest, "")
		return
	}

	updated, err := h.services.AuthService.AdminUpdateUser(ctx, update)
	if err != nil {
		h.respondError(w, r, err, "admin user update failed")
		return
	}

	utils.WriteJSON(w, models.UpdateUserResponse{
		Message: "User updated successfully",
		User:    updated.Public(),
	}, http.StatusOK)
}
