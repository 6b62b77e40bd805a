package handler

import (
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vendorrs/backend/internal/middleware"
	"github.com/vendorrs/backend/internal/repository"
	"github.com/vendorrs/backend/internal/server"
	"github.com/vendorrs/backend/internal/service"
	"github.com/vendorrs/backend/internal/validation"
)

var (
	panRe   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// AuthHandler serves registration, login, the current-user endpoint,
// and the password-reset flow.
type AuthHandler struct {
	Handler
	service *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		service: auth,
	}
}

// RegisterRequest is the registration payload. Vendor and center
// accounts carry different role-specific fields; which set is required
// depends on the role value.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"required,oneof=vendor center admin"`

	// Vendor-specific fields.
	BusinessName string `json:"businessName" validate:"required_if=Role vendor,omitempty,min=2,max=100"`
	PAN          string `json:"pan" validate:"required_if=Role vendor"`
	Phone        string `json:"phone" validate:"required_if=Role vendor"`
	Province     string `json:"province" validate:"required_if=Role vendor"`
	District     string `json:"district" validate:"required_if=Role vendor"`

	// Center-specific fields.
	Category string `json:"category" validate:"required_if=Role center"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = validation.TrimLower(r.Email)
	r.Role = strings.TrimSpace(r.Role)
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.PAN = strings.TrimSpace(r.PAN)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Province = strings.TrimSpace(r.Province)
	r.District = strings.TrimSpace(r.District)
	r.Category = strings.TrimSpace(r.Category)
}

func (r *RegisterRequest) Validate() error {
	var custom validation.CustomValidationErrors

	custom = append(custom, validation.PasswordStrength("password", r.Password)...)

	// Format checks only apply when the field is present; absence is
	// already reported by required_if.
	if r.Role == repository.RoleVendor {
		if r.PAN != "" && !panRe.MatchString(r.PAN) {
			custom = append(custom, validation.CustomValidationError{
				Field:   "pan",
				Message: "Invalid PAN number format",
				Value:   r.PAN,
			})
		}
		if r.Phone != "" && !phoneRe.MatchString(r.Phone) {
			custom = append(custom, validation.CustomValidationError{
				Field:   "phone",
				Message: "Phone number must be 10 digits",
				Value:   r.Phone,
			})
		}
	}

	return validation.Join(validation.Struct(r), custom)
}

func (r *RegisterRequest) Sanitize() {
	r.BusinessName = html.EscapeString(r.BusinessName)
}

func (r *RegisterRequest) Messages() validation.Messages {
	return validation.Messages{
		"email:required":           "Please provide a valid email address",
		"email:email":              "Please provide a valid email address",
		"role:required":            "Role must be either vendor, center, or admin",
		"role:oneof":               "Role must be either vendor, center, or admin",
		"businessName:required_if": "Business name is required for vendors",
		"businessName:min":         "Business name must be between 2 and 100 characters",
		"businessName:max":         "Business name must be between 2 and 100 characters",
		"pan:required_if":          "PAN number is required for vendors",
		"phone:required_if":        "Phone number is required",
		"province:required_if":     "Province is required",
		"district:required_if":     "District is required",
		"category:required_if":     "Category is required for centers",
	}
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = validation.TrimLower(r.Email)
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

func (r *LoginRequest) Messages() validation.Messages {
	return validation.Messages{
		"email:required":    "Please provide a valid email address",
		"email:email":       "Please provide a valid email address",
		"password:required": "Password is required",
	}
}

// ForgotPasswordRequest asks for a reset token by account email.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Normalize() {
	r.Email = validation.TrimLower(r.Email)
}

func (r *ForgotPasswordRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ForgotPasswordRequest) Messages() validation.Messages {
	return validation.Messages{
		"email:required": "Please provide a valid email address",
		"email:email":    "Please provide a valid email address",
	}
}

// ResetPasswordRequest redeems a reset token for a new password.
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r *ResetPasswordRequest) Validate() error {
	return validation.Join(
		validation.Struct(r),
		validation.PasswordStrength("password", r.Password),
		validation.FieldsEqual("confirmPassword", r.ConfirmPassword, r.Password, "Passwords do not match"),
	)
}

func (r *ResetPasswordRequest) Messages() validation.Messages {
	return validation.Messages{
		"token:required": "Reset token is required",
	}
}

// Register creates the account and returns a bearer token plus the
// stored user.
func (h *AuthHandler) Register() echo.HandlerFunc {
	return Handle(h.Handler, h.register, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) register(c echo.Context, req *RegisterRequest) (*service.AuthResult, error) {
	return h.service.Register(c.Request().Context(), service.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		BusinessName: req.BusinessName,
		PAN:          req.PAN,
		Phone:        req.Phone,
		Province:     req.Province,
		District:     req.District,
		Category:     req.Category,
	})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login() echo.HandlerFunc {
	return Handle(h.Handler, h.login, http.StatusOK, "Login successful")
}

func (h *AuthHandler) login(c echo.Context, req *LoginRequest) (*service.AuthResult, error) {
	return h.service.Login(c.Request().Context(), req.Email, req.Password)
}

// CurrentUser returns the authenticated account. Identity comes from
// the auth guard; there is no payload to validate.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	user, err := h.service.CurrentUser(c.Request().Context(), middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User retrieved successfully", user)
}

// ForgotPassword kicks off the reset flow. The response is identical
// whether or not the email belongs to an account.
func (h *AuthHandler) ForgotPassword() echo.HandlerFunc {
	return Handle(h.Handler, h.forgotPassword, http.StatusOK,
		"If an account with that email exists, a password reset link has been sent")
}

func (h *AuthHandler) forgotPassword(c echo.Context, req *ForgotPasswordRequest) (any, error) {
	return nil, h.service.ForgotPassword(c.Request().Context(), req.Email)
}

// ResetPassword redeems the emailed token for a new password.
func (h *AuthHandler) ResetPassword() echo.HandlerFunc {
	return Handle(h.Handler, h.resetPassword, http.StatusOK, "Password reset successful")
}

func (h *AuthHandler) resetPassword(c echo.Context, req *ResetPasswordRequest) (any, error) {
	return nil, h.service.ResetPassword(c.Request().Context(), req.Token, req.Password)
}
