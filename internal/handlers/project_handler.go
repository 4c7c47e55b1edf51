package handlers

import (
	"showcase/internal/errs"
	"showcase/internal/middleware"
	"showcase/internal/models"
	"showcase/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ProjectHandler handles HTTP requests for the catalog and likes.
type ProjectHandler struct {
	projects *services.ProjectService
	likes    *services.LikeService
	logger   zerolog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *services.ProjectService, likes *services.LikeService) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		likes:    likes,
		logger:   log.With().Str("handler", "projects").Logger(),
	}
}

// RegisterRoutes registers the project routes. Reads are public; auth guards the rest.
func (h *ProjectHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Get("/", h.HandleListProjects)
	projectRoutes.Get("/:id", h.HandleGetProject)
	projectRoutes.Post("/", auth, h.HandleCreateProject)
	projectRoutes.Put("/:id", auth, h.HandleUpdateProject)
	projectRoutes.Delete("/:id", auth, h.HandleDeleteProject)
	projectRoutes.Post("/:id/like", auth, h.HandleToggleLike)
	projectRoutes.Get("/:id/liked", auth, h.HandleIsLiked)
}

// HandleListProjects lists published projects.
func (h *ProjectHandler) HandleListProjects(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return respondError(c, h.logger, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	projects, err := h.projects.ListProjects(c.UserContext(), models.ProjectFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(projects)
}

// HandleGetProject returns a project with its author and counts the view.
func (h *ProjectHandler) HandleGetProject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	project, err := h.projects.ViewProject(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(project)
}

// HandleCreateProject creates a project. Admin only.
func (h *ProjectHandler) HandleCreateProject(c *fiber.Ctx) error {
	var input models.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return h.badBody(c)
	}

	project, err := h.projects.CreateProject(c.UserContext(), middleware.CurrentAccountID(c), input)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	h.logger.Info().Uint("project_id", project.ID).Str("account_id", project.AuthorID).Msg("project created")
	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleUpdateProject applies a partial update. Admin only.
func (h *ProjectHandler) HandleUpdateProject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var patch models.ProjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return h.badBody(c)
	}

	project, err := h.projects.UpdateProject(c.UserContext(), middleware.CurrentAccountID(c), id, patch)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(project)
}

// HandleDeleteProject deletes a project. Admin only.
func (h *ProjectHandler) HandleDeleteProject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if err := h.projects.DeleteProject(c.UserContext(), middleware.CurrentAccountID(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	h.logger.Info().Uint("project_id", id).Msg("project deleted")
	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}

// HandleToggleLike likes or unlikes a project for the caller.
func (h *ProjectHandler) HandleToggleLike(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	state, err := h.likes.Toggle(c.UserContext(), id, middleware.CurrentAccountID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(state)
}

// HandleIsLiked reports whether the caller likes a project.
func (h *ProjectHandler) HandleIsLiked(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	state, err := h.likes.IsLiked(c.UserContext(), id, middleware.CurrentAccountID(c))
	if err != nil {
		if errs.IsNotFound(err) {
			return c.JSON(models.LikeState{Liked: false})
		}
		return respondError(c, h.logger, err)
	}
	return c.JSON(state)
}

// badBody answers an unparsable body. The admin gate still comes first, so
// non-admins see 403 whatever they send.
func (h *ProjectHandler) badBody(c *fiber.Ctx) error {
	if err := h.projects.Authorize(c.UserContext(), middleware.CurrentAccountID(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
	})
}
