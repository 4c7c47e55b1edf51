package services

import (
	"context"
	"strings"

	"showcase/internal/errs"
	"showcase/internal/models"
	"showcase/internal/repositories"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// Listing page sizes.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// ProjectService handles business logic related to the project catalog.
type ProjectService struct {
	repo     repositories.ProjectRepository
	gate     *AdminGate
	events   EventPublisher
	validate *validator.Validate
}

// NewProjectService creates a new ProjectService. events may be nil.
func NewProjectService(repo repositories.ProjectRepository, gate *AdminGate, events EventPublisher) *ProjectService {
	return &ProjectService{
		repo:     repo,
		gate:     gate,
		events:   events,
		validate: newValidator(),
	}
}

// CreateProject stores a new project authored by callerID, who must be an admin.
func (s *ProjectService) CreateProject(ctx context.Context, callerID string, input models.ProjectInput) (*models.Project, error) {
	if err := s.gate.Require(ctx, callerID); err != nil {
		return nil, err
	}
	input = normalizeInput(input)
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	if err := checkFeatures(input.Features); err != nil {
		return nil, err
	}

	features := input.Features
	if features == nil {
		features = []string{}
	}
	project := &models.Project{
		Title:              input.Title,
		Description:        input.Description,
		FullDescription:    input.FullDescription,
		Category:           input.Category,
		GithubURL:          input.GithubURL,
		ImageURL:           input.ImageURL,
		ProjectFileURL:     input.ProjectFileURL,
		AdditionalImageURL: input.AdditionalImageURL,
		Features:           datatypes.NewJSONSlice(features),
		InstallationSteps:  input.InstallationSteps,
		AuthorID:           callerID,
		IsPublished:        true,
	}
	if input.IsPublished != nil {
		project.IsPublished = *input.IsPublished
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	publishEvent(s.events, EventProjectCreated, ProjectEvent{ProjectID: project.ID, AccountID: callerID, Title: project.Title})
	return project, nil
}

// ListProjects returns published projects matching the filter, newest first.
// A non-positive limit means the default page size; limits above the maximum are clamped.
func (s *ProjectService) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	if filter.Offset < 0 {
		return nil, errs.NewValidationError("offset", "must not be negative")
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultPageSize
	case filter.Limit > MaxPageSize:
		filter.Limit = MaxPageSize
	}
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// Authorize fails unless callerID may mutate the catalog.
func (s *ProjectService) Authorize(ctx context.Context, callerID string) error {
	return s.gate.Require(ctx, callerID)
}

// GetProject returns a single project.
func (s *ProjectService) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProjectWithAuthor returns a project joined with its author.
func (s *ProjectService) GetProjectWithAuthor(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.GetWithAuthor(ctx, id)
}

// IncrementViews counts one view. Unknown ids fail with errs.ErrNotFound.
func (s *ProjectService) IncrementViews(ctx context.Context, id uint) error {
	return s.repo.IncrementViews(ctx, id)
}

// ViewProject loads a project with its author and counts the view. The
// returned record includes the view just counted.
func (s *ProjectService) ViewProject(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	project.Views++
	return project, nil
}

// UpdateProject applies a partial update. The caller must be an admin.
func (s *ProjectService) UpdateProject(ctx context.Context, callerID string, id uint, patch models.ProjectPatch) (*models.Project, error) {
	if err := s.gate.Require(ctx, callerID); err != nil {
		return nil, err
	}
	patch = normalizePatch(patch)
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}
	if patch.Features != nil {
		if err := checkFeatures(*patch.Features); err != nil {
			return nil, err
		}
	}

	project, err := s.repo.Update(ctx, id, patch.Columns())
	if err != nil {
		return nil, err
	}
	publishEvent(s.events, EventProjectUpdated, ProjectEvent{ProjectID: project.ID, AccountID: callerID, Title: project.Title})
	return project, nil
}

// DeleteProject hard-deletes a project and its likes. The caller must be an admin.
func (s *ProjectService) DeleteProject(ctx context.Context, callerID string, id uint) error {
	if err := s.gate.Require(ctx, callerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishEvent(s.events, EventProjectDeleted, ProjectEvent{ProjectID: id, AccountID: callerID})
	return nil
}

// normalizeInput trims required text and turns empty optional strings into nil.
func normalizeInput(in models.ProjectInput) models.ProjectInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.FullDescription = nilIfBlank(in.FullDescription)
	in.GithubURL = nilIfBlank(in.GithubURL)
	in.ImageURL = nilIfBlank(in.ImageURL)
	in.ProjectFileURL = nilIfBlank(in.ProjectFileURL)
	in.AdditionalImageURL = nilIfBlank(in.AdditionalImageURL)
	in.InstallationSteps = nilIfBlank(in.InstallationSteps)
	return in
}

// normalizePatch trims required text. Optional fields keep an explicit empty
// value, which clears the column.
func normalizePatch(p models.ProjectPatch) models.ProjectPatch {
	p.Title = trimPtr(p.Title)
	p.Description = trimPtr(p.Description)
	p.Category = trimPtr(p.Category)
	return p
}

// checkFeatures rejects blank feature entries.
func checkFeatures(features []string) error {
	for _, f := range features {
		if strings.TrimSpace(f) == "" {
			return errs.NewValidationError("features", "must not contain empty entries")
		}
	}
	return nil
}

func nilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
