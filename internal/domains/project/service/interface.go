package service

import (
	"context"

	"htc-backend/internal/domains/project/model"
	"htc-backend/internal/shared/response"
)

// Service defines the earth map project use cases. Inactive projects behave as absent.
type Service interface {
	List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.ProjectResponse], error)
	// Public returns every active project, oldest first.
	Public(ctx context.Context) ([]*model.ProjectResponse, error)
	Get(ctx context.Context, id string) (*model.ProjectResponse, error)
	Create(ctx context.Context, req *model.CreateProjectRequest) (*model.ProjectResponse, error)
	Update(ctx context.Context, id string, req *model.UpdateProjectRequest) (*model.ProjectResponse, error)
	// Delete deactivates the project; the document and its logo are kept.
	Delete(ctx context.Context, id string) error
}
