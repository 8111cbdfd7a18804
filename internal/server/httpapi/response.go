package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Error codes of the response contract.
const (
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeUsernameExists    = "USERNAME_EXISTS"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeInvalidCredential = "INVALID_CREDENTIALS"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeSelfDelete        = "SELF_DELETE_NOT_ALLOWED"
	CodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

// Response is the uniform JSON envelope. Error responses carry a code in
// Error; validation failures additionally list the violated fields.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	Details []FieldError `json:"details,omitempty"`
	Data    any          `json:"data,omitempty"`
}

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserView is the client-facing projection of a user. The password hash
// never leaves the server.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserViews(users []*models.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return views
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message, Error: code})
}

func respondValidation(c *gin.Context, details []FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Error:   CodeValidationError,
		Details: details,
	})
}

// respondServiceError maps service-level sentinels to the response contract.
// Token failures of every flavor collapse to one 401 so the client cannot
// tell a revoked token from a forged one.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		respondError(c, http.StatusConflict, CodeEmailExists, "Email already registered")
	case errors.Is(err, common.ErrDuplicateUsername):
		respondError(c, http.StatusConflict, CodeUsernameExists, "Username already taken")
	case errors.Is(err, common.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, CodeInvalidCredential, "Invalid email or password")
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrorUnauthorized):
		respondError(c, http.StatusUnauthorized, CodeUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		respondError(c, http.StatusForbidden, CodeForbidden, "Admin access required")
	case errors.Is(err, common.ErrSelfDelete):
		respondError(c, http.StatusBadRequest, CodeSelfDelete, "Cannot delete your own account")
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, CodeUserNotFound, "User not found")
	default:
		respondError(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
	}
}
