package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/dentcare/dentcare_backend/internal/model"
	"github.com/dentcare/dentcare_backend/internal/service/session"
	"github.com/dentcare/dentcare_backend/pkg/authorize"
)

type UserHandler struct {
	sessions session.Service
}

func NewUserHandler(sessions session.Service) *UserHandler {
	return &UserHandler{sessions: sessions}
}

// GET /users
func (h *UserHandler) List(c fiber.Ctx) error {
	users := h.sessions.Users()
	views := make([]userView, len(users))
	for i, u := range users {
		views[i] = viewUser(u)
	}
	return ok(c, views)
}

// POST /users
func (h *UserHandler) Create(c fiber.Ctx) error {
	var body struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Username == "" || body.Password == "" {
		return badRequest(c, "username and password are required")
	}
	if _, known := authorize.KnownRoles[authorize.Role(body.Role)]; !known {
		return badRequest(c, "unknown role")
	}

	u, err := h.sessions.AddUser(c.Context(), session.CreateUserRequest{
		Username:    body.Username,
		Password:    body.Password,
		DisplayName: body.DisplayName,
		Role:        model.Role(body.Role),
	})
	if err != nil {
		if errors.Is(err, session.ErrUsernameTaken) {
			return conflict(c, err.Error())
		}
		return err
	}

	return created(c, viewUser(u))
}

// PATCH /users/:id
func (h *UserHandler) Update(c fiber.Ctx) error {
	id := c.Params("id")
	if _, found := h.sessions.User(id); !found {
		return notFound(c, "user not found")
	}

	var body struct {
		Username    *string `json:"username"`
		Password    *string `json:"password"`
		DisplayName *string `json:"displayName"`
		Role        *string `json:"role"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := session.UpdateUserRequest{
		Username:    body.Username,
		Password:    body.Password,
		DisplayName: body.DisplayName,
	}
	if body.Role != nil {
		if _, known := authorize.KnownRoles[authorize.Role(*body.Role)]; !known {
			return badRequest(c, "unknown role")
		}
		r := model.Role(*body.Role)
		req.Role = &r
	}

	h.sessions.UpdateUser(c.Context(), id, req)

	u, _ := h.sessions.User(id)
	return ok(c, viewUser(u))
}

// DELETE /users/:id
//
// Deleting the authenticated account is a no-op in the service; the client
// still gets 204 either way, matching the silent semantics.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	h.sessions.DeleteUser(c.Context(), c.Params("id"))
	return noContent(c)
}
