package service

import (
	"context"
	"errors"
	"fmt"

	"htc-backend/internal/domains/kol/model"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

type Service interface {
	List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.KolResponse], error)
	Get(ctx context.Context, id string) (*model.KolResponse, error)
	Create(ctx context.Context, req *model.CreateKolRequest) (*model.KolResponse, error)
	Update(ctx context.Context, id string, req *model.UpdateKolRequest) (*model.KolResponse, error)
	Delete(ctx context.Context, id string) error
}

var AvatarSlot = media.Slot[*model.Kol]{
	Get: func(k *model.Kol) string { return k.Avatar },
	Set: func(k *model.Kol, v string) { k.Avatar = v },
}

type kolService struct {
	repo    repository.Repository[*model.Kol]
	avatars *media.Manager[*model.Kol]
}

func NewKolService(repo repository.Repository[*model.Kol], avatars *media.Manager[*model.Kol]) Service {
	return &kolService{repo: repo, avatars: avatars}
}

func (s *kolService) List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.KolResponse], error) {
	page, err := s.repo.GetPaged(ctx, q.PageQuery())
	if err != nil {
		return response.Paginated[*model.KolResponse]{}, fmt.Errorf("list kols: %w", err)
	}

	items := make([]*model.KolResponse, 0, len(page.Items))
	for _, k := range page.Items {
		items = append(items, k.ToResponse(s.avatars.Resolve(ctx, k)))
	}
	return response.NewPaginated(page, items), nil
}

func (s *kolService) Get(ctx context.Context, id string) (*model.KolResponse, error) {
	k, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return k.ToResponse(s.avatars.Resolve(ctx, k)), nil
}

func (s *kolService) Create(ctx context.Context, req *model.CreateKolRequest) (*model.KolResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	kol := &model.Kol{Name: req.Name, LinkX: req.LinkX, Disabled: req.Disabled}
	created, err := s.avatars.Create(ctx, kol, req.Avatar)
	if err != nil {
		return nil, fmt.Errorf("create kol: %w", err)
	}
	return created.ToResponse(s.avatars.Resolve(ctx, created)), nil
}

func (s *kolService) Update(ctx context.Context, id string, req *model.UpdateKolRequest) (*model.KolResponse, error) {
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
		return nil, fmt.Errorf("update kol %s: %w", id, err)
	}
	if !res.Found() {
		return nil, model.ErrKolNotFound
	}
	return existing.ToResponse(s.avatars.Resolve(ctx, existing)), nil
}

func (s *kolService) Delete(ctx context.Context, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.avatars.Delete(ctx, existing)
	if err != nil {
		return fmt.Errorf("delete kol %s: %w", id, err)
	}
	if !deleted {
		return model.ErrKolNotFound
	}
	return nil
}

func (s *kolService) find(ctx context.Context, id string) (*model.Kol, error) {
	k, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.ErrKolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get kol %s: %w", id, err)
	}
	return k, nil
}
