package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	minPasswordLen    = 8
	maxPasswordLen    = 72 // bcrypt input limit, in bytes
	maxUsernameLength = 50
)

// SignUpRequest is the request body for POST /users/sign-up
type SignUpRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	RetypedPassword string `json:"retyped_password"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	username := strings.TrimSpace(s.Username)
	if username == "" {
		errs = append(errs, "username is required")
	} else if len(username) > maxUsernameLength {
		errs = append(errs, "username must be at most 50 characters")
	}
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	} else if len(s.Password) < minPasswordLen {
		errs = append(errs, "password must be at least 8 characters")
	} else if len(s.Password) > maxPasswordLen {
		errs = append(errs, "password must be at most 72 bytes")
	}
	if s.RetypedPassword == "" {
		errs = append(errs, "retyped_password is required")
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SignUpResponse is the response body for POST /users/sign-up
type SignUpResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// LoginResponse is the response body for POST /auth/login
type LoginResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// SignUpSuccessResponse is the success response envelope for POST /users/sign-up (201).
type SignUpSuccessResponse struct {
	Data  SignUpResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LoginSuccessResponse is the success response envelope for POST /auth/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProfileSuccessResponse is the success response envelope for GET /auth/profile (200).
type ProfileSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles sign-up, login and profile endpoints.
type UserController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.AuthService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Creates a user and returns it with an access token. Password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created user and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/sign-up [post]
func (c *UserController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.SignUp(r.Context(), domain.SignUpInput{
		Username:        req.Username,
		Password:        req.Password,
		RetypedPassword: req.RetypedPassword,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, SignUpResponse{User: user, Token: token})
}

// Login godoc
// @Summary Log in
// @Description Exchanges username and password for an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains user_id and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{UserID: user.ID, Token: token})
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/profile [get]
func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.Profile(r.Context(), caller.ID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
