package repositories

import (
	"context"
	"strings"
	"time"

	"showcase/internal/errs"
	"showcase/internal/models"

	"gorm.io/gorm"
)

// GORMProjectRepository is a GORM implementation of ProjectRepository.
type GORMProjectRepository struct {
	db *gorm.DB
}

// NewGORMProjectRepository creates a new instance of GORMProjectRepository.
func NewGORMProjectRepository(db *gorm.DB) *GORMProjectRepository {
	return &GORMProjectRepository{
		db: db,
	}
}

// Create inserts a new project. Counters always start at zero.
func (r *GORMProjectRepository) Create(ctx context.Context, project *models.Project) error {
	project.ID = 0
	project.Views = 0
	project.Likes = 0
	project.TitleSearch = searchKey(project.Title)
	if err := r.db.WithContext(ctx).Omit("Author").Create(project).Error; err != nil {
		return translate("create project", "project", project.Title, err)
	}
	return nil
}

// List returns published projects, newest first. The filter is expected to be
// normalized by the caller (limit in range, offset >= 0).
func (r *GORMProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).Where("is_published = ?", true)
	if filter.Category != "" && filter.Category != models.CategoryAll {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where(`title_search LIKE ? ESCAPE '\'`, "%"+escapeLike(searchKey(filter.Search))+"%")
	}

	projects := make([]models.Project, 0)
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&projects).Error
	if err != nil {
		return nil, translate("list projects", "project", nil, err)
	}
	return projects, nil
}

// GetByID retrieves a single project by its ID from the database.
func (r *GORMProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, translate("get project by id", "project", id, err)
	}
	return &project, nil
}

// GetWithAuthor loads the project and its author with inner-join semantics:
// a project whose author row is missing is reported as not found.
func (r *GORMProjectRepository) GetWithAuthor(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		InnerJoins("Author").
		Where("projects.id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, translate("get project with author", "project", id, err)
	}
	return &project, nil
}

// Update writes the given columns and refreshes updated_at, then returns the stored row.
func (r *GORMProjectRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) (*models.Project, error) {
	values := make(map[string]interface{}, len(columns)+1)
	for k, v := range columns {
		values[k] = v
	}
	if title, ok := columns["title"].(string); ok {
		values["title_search"] = searchKey(title)
	}
	values["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, translate("update project", "project", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("project", id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the project and its like-memberships in one transaction.
func (r *GORMProjectRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectLike{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("project", id)
		}
		return nil
	})
	return translate("delete project", "project", id, err)
}

// IncrementViews adds one to the view counter in a single statement.
func (r *GORMProjectRepository) IncrementViews(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return translate("increment views", "project", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("project", id)
	}
	return nil
}

// BackfillTitleSearch fills the search key of rows written before the column existed.
func (r *GORMProjectRepository) BackfillTitleSearch(ctx context.Context) (int, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Select("id", "title").
		Where("title_search = ? AND title <> ?", "", "").
		Find(&projects).Error
	if err != nil {
		return 0, translate("load projects for search backfill", "project", nil, err)
	}
	for _, p := range projects {
		err := r.db.WithContext(ctx).Model(&models.Project{}).
			Where("id = ?", p.ID).
			UpdateColumn("title_search", searchKey(p.Title)).Error
		if err != nil {
			return 0, translate("backfill title search", "project", p.ID, err)
		}
	}
	return len(projects), nil
}

// searchKey is the form titles and search text are compared in.
func searchKey(s string) string {
	return strings.ToLower(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
