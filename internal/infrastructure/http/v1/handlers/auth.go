package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmabill/internal/core/appctx"
	"pharmabill/internal/core/apperror"
	"pharmabill/internal/core/id"
	"pharmabill/internal/domain/auth"
	"pharmabill/internal/infrastructure/http/v1/dto"
)

// AuthHandler provides authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

func userToDTO(u *auth.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID.String(),
		OrganizationID: u.OrganizationID.String(),
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           string(u.Role),
		IsActive:       u.IsActive,
		IsAdmin:        u.IsAdmin,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

func tokensToDTO(t *auth.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	orgID, err := id.Parse(req.OrganizationID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid organizationId"))
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterRequest{
		OrganizationID: orgID,
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		Role:           auth.Role(req.Role),
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(201, userToDTO(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		Tokens: tokensToDTO(tokens),
		User:   userToDTO(user),
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, tokensToDTO(tokens))
}

// Logout handles POST /auth/logout. Revokes all refresh tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := id.Parse(appctx.GetUserID(c.Request.Context()))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "logged out")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := id.Parse(appctx.GetUserID(c.Request.Context()))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, userToDTO(user))
}

// ListUsers handles GET /auth/users. Scoped to the caller's organization.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	orgID, ok := h.CallerOrganization(c)
	if !ok {
		return
	}

	filter := auth.UserFilter{
		OrganizationID: orgID,
		Search:         c.Query("search"),
		Role:           auth.Role(c.Query("role")),
		Limit:          h.ParseIntQuery(c, "limit", 50),
		Offset:         h.ParseIntQuery(c, "offset", 0),
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.UserResponse, len(users))
	for i := range users {
		items[i] = userToDTO(&users[i])
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// ChangeRole handles PUT /auth/users/:id/role.
func (h *AuthHandler) ChangeRole(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangeRole(c.Request.Context(), userID, auth.Role(req.Role)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "role updated")
}
