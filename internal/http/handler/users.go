package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"userapi/internal/database"
	"userapi/internal/model"
	"userapi/internal/repository"
)

const (
	defaultLimit = 100
	maxLimit     = 100

	// TotalCountHeader carries the total number of users on list responses.
	TotalCountHeader = "X-Total-Count"
)

// SessionOpener hands out request-scoped database sessions.
type SessionOpener interface {
	Open(ctx context.Context) (*database.Session, error)
}

// UserRepositoryFactory builds the repository used by a single request.
type UserRepositoryFactory func() repository.Repository[model.User]

// createUserRequest is the accepted body for POST /users. The id is always
// assigned by storage.
type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// withSession opens a session for the request, runs fn and releases the
// session before the response is returned.
func withSession(c *fiber.Ctx, sessions SessionOpener, fn func(ctx context.Context, s *database.Session) error) error {
	ctx := c.UserContext()
	s, err := sessions.Open(ctx)
	if err != nil {
		return writeInternal(c, err)
	}
	defer s.Close()
	return fn(ctx, s)
}

// CreateUser persists a new user.
//
// @Summary  Create a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user  body      createUserRequest  true  "User to create"
// @Success  200   {object}  model.User
// @Failure  400   {object}  errorPayload
// @Failure  500   {object}  errorPayload
// @Router   /users [post]
func CreateUser(sessions SessionOpener, newRepo UserRepositoryFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, codeInvalidBody, "request body must be a JSON object")
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return writeError(c, fiber.StatusBadRequest, codeValidation, "name is required")
		}

		return withSession(c, sessions, func(ctx context.Context, s *database.Session) error {
			user, err := newRepo().Create(ctx, s, &model.User{Name: name, Email: strings.TrimSpace(req.Email)})
			if err != nil {
				return writeInternal(c, err)
			}
			return c.JSON(user)
		})
	}
}

// ListUsers returns a page of users ordered by id.
//
// @Summary  List users
// @Tags     users
// @Produce  json
// @Param    offset  query     int  false  "Rows to skip"      default(0)   minimum(0)
// @Param    limit   query     int  false  "Maximum rows"      default(100) minimum(0) maximum(100)
// @Success  200     {array}   model.User
// @Header   200     {integer} X-Total-Count "Total number of users"
// @Failure  400     {object}  errorPayload
// @Failure  500     {object}  errorPayload
// @Router   /users [get]
func ListUsers(sessions SessionOpener, newRepo UserRepositoryFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil || offset < 0 {
			return writeError(c, fiber.StatusBadRequest, codeInvalidOffset, "offset must be a non-negative integer")
		}
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
		if err != nil || limit < 0 || limit > maxLimit {
			return writeError(c, fiber.StatusBadRequest, codeInvalidLimit, "limit must be an integer between 0 and 100")
		}

		return withSession(c, sessions, func(ctx context.Context, s *database.Session) error {
			repo := newRepo()
			users, err := repo.GetMany(ctx, s, offset, limit)
			if err != nil {
				return writeInternal(c, err)
			}
			total, err := repo.Count(ctx, s)
			if err != nil {
				return writeInternal(c, err)
			}
			c.Set(TotalCountHeader, strconv.Itoa(total))
			return c.JSON(users)
		})
	}
}

// GetUser returns a user by id, or null when it does not exist.
//
// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id   path      int  true  "User ID"
// @Success  200  {object}  model.User  "The user, or null when absent"
// @Failure  400  {object}  errorPayload
// @Failure  500  {object}  errorPayload
// @Router   /users/{id} [get]
func GetUser(sessions SessionOpener, newRepo UserRepositoryFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, codeInvalidID, "id must be an integer")
		}

		return withSession(c, sessions, func(ctx context.Context, s *database.Session) error {
			user, err := newRepo().GetByID(ctx, s, id)
			if err != nil {
				return writeInternal(c, err)
			}
			return writeUserOrNull(c, user)
		})
	}
}

// DeleteUser removes a user and returns it, or null when it does not exist.
//
// @Summary  Delete a user
// @Tags     users
// @Produce  json
// @Param    id   path      int  true  "User ID"
// @Success  200  {object}  model.User  "The removed user, or null when absent"
// @Failure  400  {object}  errorPayload
// @Failure  500  {object}  errorPayload
// @Router   /users/{id} [delete]
func DeleteUser(sessions SessionOpener, newRepo UserRepositoryFactory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, codeInvalidID, "id must be an integer")
		}

		return withSession(c, sessions, func(ctx context.Context, s *database.Session) error {
			user, err := newRepo().DeleteByID(ctx, s, id)
			if err != nil {
				return writeInternal(c, err)
			}
			return writeUserOrNull(c, user)
		})
	}
}

// writeUserOrNull renders absence as a JSON null body with status 200.
func writeUserOrNull(c *fiber.Ctx, user *model.User) error {
	if user == nil {
		return c.JSON(nil)
	}
	return c.JSON(user)
}
