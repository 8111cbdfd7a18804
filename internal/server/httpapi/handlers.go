package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Handler holds the HTTP handlers of the API. All business decisions live
// in the service; handlers bind, sanitize, validate and translate errors to
// the response contract.
type Handler struct {
	svc *services.UserService
	log logging.Logger
}

func NewHandler(svc *services.UserService, log logging.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bindRequest(c, &req) {
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), services.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.logFailure(c, "registration failed", err)
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  toUserView(user),
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindRequest(c, &req) {
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logFailure(c, "login failed", err)
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"user":  toUserView(user),
		"token": token,
	})
}

// Logout revokes the presented token until its natural expiry. The token
// and its expiry were attached by the auth middleware.
func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString(ctxKeyToken)
	expiresAt, _ := c.Get(ctxKeyExp)
	exp, _ := expiresAt.(time.Time)

	h.svc.Logout(c.Request.Context(), token, exp)

	respondOK(c, http.StatusOK, "Logout successful", nil)
}

func (h *Handler) GetProfile(c *gin.Context) {
	user := currentUser(c)

	profile, err := h.svc.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"user": toUserView(profile)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindRequest(c, &req) {
		return
	}

	user := currentUser(c)
	updated, err := h.svc.UpdateProfile(c.Request.Context(), user.ID, models.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		h.logFailure(c, "profile update failed", err)
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Profile updated successfully", gin.H{"user": toUserView(updated)})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"users": toUserViews(users),
		"count": len(users),
	})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	// a non-numeric id cannot name an existing user
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, CodeUserNotFound, "User not found")
		return
	}

	actor := currentUser(c)
	if err := h.svc.DeleteUser(c.Request.Context(), actor.ID, targetID); err != nil {
		h.logFailure(c, "user deletion failed", err)
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User deleted successfully", gin.H{"deletedUserId": targetID})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"stats": gin.H{
		"total":     stats.Total,
		"today":     stats.Today,
		"thisWeek":  stats.ThisWeek,
		"thisMonth": stats.ThisMonth,
	}})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) logFailure(c *gin.Context, msg string, err error) {
	h.log.Warn(c.Request.Context(), msg,
		"request_id", c.GetString(ctxKeyReqID),
		"error", err.Error(),
	)
}
