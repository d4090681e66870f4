package service

import (
	"context"
	"errors"
	"fmt"

	"htc-backend/internal/domains/artist/model"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

var AvatarSlot = media.Slot[*model.Artist]{
	Get: func(a *model.Artist) string { return a.Avatar },
	Set: func(a *model.Artist, v string) { a.Avatar = v },
}

type artistService struct {
	repo     repository.Repository[*model.Artist]
	avatars  *media.Manager[*model.Artist]
	pictures Pictures
}

func NewArtistService(repo repository.Repository[*model.Artist], avatars *media.Manager[*model.Artist], pictures Pictures) Service {
	return &artistService{
		repo:     repo,
		avatars:  avatars,
		pictures: pictures,
	}
}

func (s *artistService) List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.ArtistResponse], error) {
	page, err := s.repo.GetPaged(ctx, q.PageQuery())
	if err != nil {
		return response.Paginated[*model.ArtistResponse]{}, fmt.Errorf("list artists: %w", err)
	}

	items := make([]*model.ArtistResponse, 0, len(page.Items))
	for _, a := range page.Items {
		res, err := s.toResponse(ctx, a)
		if err != nil {
			return response.Paginated[*model.ArtistResponse]{}, err
		}
		items = append(items, res)
	}
	return response.NewPaginated(page, items), nil
}

func (s *artistService) Get(ctx context.Context, id string) (*model.ArtistResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, a)
}

func (s *artistService) Create(ctx context.Context, req *model.CreateArtistRequest) (*model.ArtistResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.avatars.Create(ctx, req.ToArtist(), req.Avatar)
	if err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}
	return created.ToResponse(s.avatars.Resolve(ctx, created), 0), nil
}

func (s *artistService) Update(ctx context.Context, id string, req *model.UpdateArtistRequest) (*model.ArtistResponse, error) {
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
		return nil, fmt.Errorf("update artist %s: %w", id, err)
	}
	if !res.Found() {
		return nil, model.ErrArtistNotFound
	}
	return s.toResponse(ctx, existing)
}

func (s *artistService) Delete(ctx context.Context, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.avatars.Delete(ctx, existing)
	if err != nil {
		return fmt.Errorf("delete artist %s: %w", id, err)
	}
	if !deleted {
		return model.ErrArtistNotFound
	}
	return nil
}

func (s *artistService) Images(ctx context.Context, id string) (*model.ArtistImagesResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	pictures, err := s.pictures.ListByArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list pictures of artist %s: %w", id, err)
	}
	if pictures == nil {
		pictures = []model.Picture{}
	}

	return &model.ArtistImagesResponse{
		Artist:   a.ToResponse(s.avatars.Resolve(ctx, a), int64(len(pictures))),
		Pictures: pictures,
	}, nil
}

func (s *artistService) find(ctx context.Context, id string) (*model.Artist, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist %s: %w", id, err)
	}
	return a, nil
}

func (s *artistService) toResponse(ctx context.Context, a *model.Artist) (*model.ArtistResponse, error) {
	total, err := s.pictures.CountByArtist(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("count pictures of artist %s: %w", a.ID, err)
	}
	return a.ToResponse(s.avatars.Resolve(ctx, a), total), nil
}
