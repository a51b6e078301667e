package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ombreaffaire/authsvc/domain"
)

// AuthHandlers handles the registration and recovery HTTP endpoints
type AuthHandlers struct {
	authSvc  domain.AuthService
	otpSvc   domain.OTPService
	resetSvc domain.PasswordResetService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, resetSvc domain.PasswordResetService) *AuthHandlers {
	return &AuthHandlers{
		authSvc:  authSvc,
		otpSvc:   otpSvc,
		resetSvc: resetSvc,
	}
}

// SendOTPRequest represents an OTP issue request
type SendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyOTPRequest represents an OTP verification request
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetRequestRequest represents a password reset request
type ResetRequestRequest struct {
	Email string `json:"email" binding:"required"`
}

// ValidateResetTokenRequest represents a reset token check
type ValidateResetTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResetPasswordRequest represents a reset token consumption
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// SendOTP handles OTP issuance for a not-yet-registered email
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	_, err := h.otpSvc.Issue(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
		case errors.Is(err, domain.ErrOTPThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrMailDelivery):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP email"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// VerifyOTP handles OTP verification
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		return
	}

	if err := h.otpSvc.Verify(c.Request.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No OTP found for this email"})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusGone, gin.H{"error": "OTP has expired"})
		case errors.Is(err, domain.ErrOTPMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully"})
}

// Register handles account creation after OTP verification
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all fields"})
		return
	}

	_, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case isPasswordPolicyError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		case errors.Is(err, domain.ErrEmailNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified. Please complete OTP verification."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login handles credential authentication
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all fields"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": result.Token})
}

// RequestPasswordReset handles reset token issuance
func (h *AuthHandlers) RequestPasswordReset(c *gin.Context) {
	var req ResetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := h.resetSvc.Request(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this email"})
		case errors.Is(err, domain.ErrMailDelivery):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request password reset"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent successfully."})
}

// ValidateResetToken handles reset token checks
func (h *AuthHandlers) ValidateResetToken(c *gin.Context) {
	var req ValidateResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	if err := h.resetSvc.Validate(c.Request.Context(), req.Token); err != nil {
		switch {
		case errors.Is(err, domain.ErrResetTokenInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		case errors.Is(err, domain.ErrResetTokenExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Token has expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token validation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// ResetPassword handles reset token consumption
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and new password are required"})
		return
	}

	if err := h.resetSvc.Consume(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		switch {
		case isPasswordPolicyError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrResetTokenInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		case errors.Is(err, domain.ErrResetTokenExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Reset token has expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Me handles getting the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID.(uint))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

func isPasswordPolicyError(err error) bool {
	return errors.Is(err, domain.ErrPasswordTooShort) ||
		errors.Is(err, domain.ErrPasswordNoUpper) ||
		errors.Is(err, domain.ErrPasswordNoDigit) ||
		errors.Is(err, domain.ErrPasswordNoSymbol)
}
