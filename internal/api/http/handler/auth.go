package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/api/http/middleware"
	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/service/session"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

type AuthHandler struct {
	sessions session.Service
}

func NewAuthHandler(sessions session.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// userView is the wire shape of a user; the password hash never leaves the
// service layer.
type userView struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Role        model.Role `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func viewUser(u model.User) userView {
	return userView{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	u, err := h.sessions.Login(c.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return unauthorized(c, err.Error())
		}
		return err
	}

	return ok(c, fiber.Map{
		"token": u.ID,
		"user":  viewUser(u),
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	h.sessions.Logout(c.Context())
	return noContent(c)
}

// GET /auth/me
func (h *AuthHandler) Me(c fiber.Ctx) error {
	u, okUser := middleware.UserFromFiber(c)
	if !okUser {
		return fiber.ErrUnauthorized
	}
	return ok(c, viewUser(u))
}

// GET /auth/can?resource=patient&action=edit
//
// The advisory capability check the UI uses to decide what to render.
func (h *AuthHandler) Can(c fiber.Ctx) error {
	resource := authorize.Resource(c.Query("resource"))
	action := authorize.Action(c.Query("action"))
	if resource == "" || action == "" {
		return badRequest(c, "resource and action are required")
	}

	return ok(c, fiber.Map{
		"allowed": h.sessions.CanPerformAction(action, resource),
	})
}
