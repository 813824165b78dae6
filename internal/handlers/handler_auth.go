package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/SscSPs/car_parking_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and the current-user lookup.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{userService: us, tokenService: ts}
}

// registerAuthRoutes sets up the routes for authentication. Register and login share
// the login rate limiter; /me requires a token.
func registerAuthRoutes(api *gin.RouterGroup, services *portssvc.ServiceContainer, limit gin.HandlerFunc, auth gin.HandlerFunc) {
	h := newAuthHandler(services.User, services.Token)

	group := api.Group("/auth")
	{
		group.POST("/register", limit, h.register)
		group.POST("/login", limit, h.login)
		group.GET("/me", auth, h.me)
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a USER account and returns an access token for it.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.MessageResponse "Invalid body or email already registered"
// @Failure 429 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: bindErrorMessage(err)})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Server error during registration")
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Server error during registration")
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// login godoc
// @Summary User login
// @Description Authenticates a user by email and password and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.MessageResponse "Invalid email or password"
// @Failure 429 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: bindErrorMessage(err)})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Server error during login")
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Server error during login")
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 403 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err, "Server error while fetching user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
