package service

import (
	"context"
	"errors"
	"fmt"

	"htc-backend/internal/domains/pet/model"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

type Service interface {
	List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.PetResponse], error)
	Get(ctx context.Context, id string) (*model.PetResponse, error)
	Create(ctx context.Context, req *model.CreatePetRequest) (*model.PetResponse, error)
	Update(ctx context.Context, id string, req *model.UpdatePetRequest) (*model.PetResponse, error)
	Delete(ctx context.Context, id string) error
}

var AvatarSlot = media.Slot[*model.Pet]{
	Get: func(p *model.Pet) string { return p.Avatar },
	Set: func(p *model.Pet, v string) { p.Avatar = v },
}

type petService struct {
	repo    repository.Repository[*model.Pet]
	avatars *media.Manager[*model.Pet]
}

func NewPetService(repo repository.Repository[*model.Pet], avatars *media.Manager[*model.Pet]) Service {
	return &petService{repo: repo, avatars: avatars}
}

func (s *petService) List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.PetResponse], error) {
	page, err := s.repo.GetPaged(ctx, q.PageQuery())
	if err != nil {
		return response.Paginated[*model.PetResponse]{}, fmt.Errorf("list pets: %w", err)
	}

	items := make([]*model.PetResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, p.ToResponse(s.avatars.Resolve(ctx, p)))
	}
	return response.NewPaginated(page, items), nil
}

func (s *petService) Get(ctx context.Context, id string) (*model.PetResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.ToResponse(s.avatars.Resolve(ctx, p)), nil
}

func (s *petService) Create(ctx context.Context, req *model.CreatePetRequest) (*model.PetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.avatars.Create(ctx, &model.Pet{Name: req.Name, LinkX: req.LinkX, Disabled: req.Disabled}, req.Avatar)
	if err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}
	return created.ToResponse(s.avatars.Resolve(ctx, created)), nil
}

func (s *petService) Update(ctx context.Context, id string, req *model.UpdatePetRequest) (*model.PetResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := existing.Avatar
	req.Apply(existing)

	res, err := s.avatars.Update(ctx, id, existing, previous, req.Avatar)
	if err != nil {
		return nil, fmt.Errorf("update pet %s: %w", id, err)
	}
	if !res.Found() {
		return nil, model.ErrPetNotFound
	}
	return existing.ToResponse(s.avatars.Resolve(ctx, existing)), nil
}

func (s *petService) Delete(ctx context.Context, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.avatars.Delete(ctx, existing)
	if err != nil {
		return fmt.Errorf("delete pet %s: %w", id, err)
	}
	if !deleted {
		return model.ErrPetNotFound
	}
	return nil
}

func (s *petService) find(ctx context.Context, id string) (*model.Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pet %s: %w", id, err)
	}
	return p, nil
}
