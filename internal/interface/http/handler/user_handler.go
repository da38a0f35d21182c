package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"user-service-backend/internal/domain/entity"
	"user-service-backend/internal/interface/presenter"
	"user-service-backend/internal/usecase"
)

// UserHandler adapts HTTP requests to use case calls.
type UserHandler struct {
	usecase   usecase.UserUsecase
	presenter *presenter.UserPresenter
}

func NewUserHandler(usecase usecase.UserUsecase, presenter *presenter.UserPresenter) *UserHandler {
	return &UserHandler{usecase: usecase, presenter: presenter}
}

// createUserRequest enumerates exactly the recognized creation fields.
type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// updateUserRequest carries the optional profile fields; absent fields stay
// unchanged.
type updateUserRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

func (h *UserHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/v1/users", h.createUser)
	app.Get("/api/v1/users", h.listUsers)
	app.Get("/api/v1/users/search/domain/:domain", h.searchByDomain)
	app.Get("/api/v1/users/:id<int>", h.getUser)
	app.Put("/api/v1/users/:id<int>", h.updateUser)
	app.Patch("/api/v1/users/:id<int>", h.updateUser)
	app.Delete("/api/v1/users/:id<int>", h.deleteUser)
}

func (h *UserHandler) createUser(c *fiber.Ctx) error {
	payload := new(createUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}

	if payload.Username == "" || payload.Email == "" || payload.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username, email and full_name are required"})
	}

	user, err := h.usecase.Create(c.UserContext(), usecase.CreateUserInput{
		Username: payload.Username,
		Email:    payload.Email,
		FullName: payload.FullName,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.presenter.ToResponse(user))
}

func (h *UserHandler) listUsers(c *fiber.Ctx) error {
	users, err := h.usecase.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": h.presenter.ToList(users),
		"count": len(users),
	})
}

func (h *UserHandler) getUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	user, err := h.usecase.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(h.presenter.ToResponse(user))
}

func (h *UserHandler) updateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	payload := new(updateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}

	user, err := h.usecase.Update(c.UserContext(), id, usecase.UpdateUserInput{
		FullName: payload.FullName,
		Email:    payload.Email,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(h.presenter.ToResponse(user))
}

func (h *UserHandler) deleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	if _, err := h.usecase.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "user " + strconv.FormatInt(id, 10) + " deleted"})
}

func (h *UserHandler) searchByDomain(c *fiber.Ctx) error {
	domain := c.Params("domain")

	users, err := h.usecase.SearchByEmailDomain(c.UserContext(), domain)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":         h.presenter.ToList(users),
		"count":         len(users),
		"search_domain": domain,
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// respondError maps domain errors to HTTP statuses. Anything unclassified is
// an internal error and must not leak implementation detail.
func respondError(c *fiber.Ctx, err error) error {
	var (
		notFound      *entity.NotFoundError
		alreadyExists *entity.AlreadyExistsError
		invalidData   *entity.InvalidDataError
	)

	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &alreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &invalidData):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
