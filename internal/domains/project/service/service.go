package service

import (
	"context"
	"errors"
	"fmt"

	"htc-backend/internal/domains/project/model"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

var LogoSlot = media.Slot[*model.Project]{
	Get: func(p *model.Project) string { return p.Logo },
	Set: func(p *model.Project, v string) { p.Logo = v },
}

type projectService struct {
	repo  repository.Repository[*model.Project]
	logos *media.Manager[*model.Project]
}

func NewProjectService(repo repository.Repository[*model.Project], logos *media.Manager[*model.Project]) Service {
	return &projectService{repo: repo, logos: logos}
}

func (s *projectService) List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.ProjectResponse], error) {
	page, err := s.repo.GetPaged(ctx, q.PageQuery())
	if err != nil {
		return response.Paginated[*model.ProjectResponse]{}, fmt.Errorf("list projects: %w", err)
	}
	return response.NewPaginated(page, s.toResponses(ctx, page.Items)), nil
}

func (s *projectService) Public(ctx context.Context) ([]*model.ProjectResponse, error) {
	projects, err := s.repo.Find(ctx, model.ActiveFilter(), repository.Asc(repository.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("list public projects: %w", err)
	}
	return s.toResponses(ctx, projects), nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.ProjectResponse, error) {
	p, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.ToResponse(s.logos.Resolve(ctx, p)), nil
}

func (s *projectService) Create(ctx context.Context, req *model.CreateProjectRequest) (*model.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	project := req.ToProject()
	if req.Logo == nil {
		project.Logo = req.LogoURL
	}

	created, err := s.logos.Create(ctx, project, req.Logo)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created.ToResponse(s.logos.Resolve(ctx, created)), nil
}

func (s *projectService) Update(ctx context.Context, id string, req *model.UpdateProjectRequest) (*model.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := existing.Logo
	req.Apply(existing)

	res, err := s.logos.Update(ctx, id, existing, previous, req.Logo)
	if err != nil {
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}
	if !res.Found() {
		return nil, model.ErrProjectNotFound
	}
	return existing.ToResponse(s.logos.Resolve(ctx, existing)), nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	existing, err := s.findActive(ctx, id)
	if err != nil {
		return err
	}

	existing.IsActive = false
	res, err := s.repo.Update(ctx, id, existing)
	if err != nil {
		return fmt.Errorf("deactivate project %s: %w", id, err)
	}
	if !res.Found() {
		return model.ErrProjectNotFound
	}
	return nil
}

func (s *projectService) findActive(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	if !p.IsActive {
		return nil, model.ErrProjectNotFound
	}
	return p, nil
}

func (s *projectService) toResponses(ctx context.Context, projects []*model.Project) []*model.ProjectResponse {
	out := make([]*model.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ToResponse(s.logos.Resolve(ctx, p)))
	}
	return out
}
