package service

import (
	"context"
	"errors"
	"fmt"

	artistmodel "htc-backend/internal/domains/artist/model"
	"htc-backend/internal/domains/gallery/model"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

var PictureSlot = media.Slot[*model.Gallery]{
	Get: func(g *model.Gallery) string { return g.Picture },
	Set: func(g *model.Gallery, v string) { g.Picture = v },
}

type galleryService struct {
	repo     repository.Repository[*model.Gallery]
	artists  repository.Repository[*artistmodel.Artist]
	pictures *media.Manager[*model.Gallery]
}

func NewGalleryService(
	repo repository.Repository[*model.Gallery],
	artists repository.Repository[*artistmodel.Artist],
	pictures *media.Manager[*model.Gallery],
) Service {
	return &galleryService{
		repo:     repo,
		artists:  artists,
		pictures: pictures,
	}
}

func (s *galleryService) List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.GalleryResponse], error) {
	page, err := s.repo.GetPaged(ctx, q.PageQuery())
	if err != nil {
		return response.Paginated[*model.GalleryResponse]{}, fmt.Errorf("list galleries: %w", err)
	}

	items := make([]*model.GalleryResponse, 0, len(page.Items))
	for _, g := range page.Items {
		items = append(items, g.ToResponse(s.pictures.Resolve(ctx, g)))
	}
	return response.NewPaginated(page, items), nil
}

func (s *galleryService) Get(ctx context.Context, id string) (*model.GalleryResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.ToResponse(s.pictures.Resolve(ctx, g)), nil
}

func (s *galleryService) Create(ctx context.Context, req *model.CreateGalleryRequest) (*model.GalleryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureArtist(ctx, req.ArtistID); err != nil {
		return nil, err
	}

	created, err := s.pictures.Create(ctx, &model.Gallery{ArtistID: req.ArtistID, ShowOnTop: req.ShowOnTop}, req.Picture)
	if err != nil {
		return nil, fmt.Errorf("create gallery: %w", err)
	}
	return created.ToResponse(s.pictures.Resolve(ctx, created)), nil
}

func (s *galleryService) Update(ctx context.Context, id string, req *model.UpdateGalleryRequest) (*model.GalleryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ArtistID != nil && *req.ArtistID != existing.ArtistID {
		if err := s.ensureArtist(ctx, *req.ArtistID); err != nil {
			return nil, err
		}
	}

	previous := existing.Picture
	req.Apply(existing)

	res, err := s.pictures.Update(ctx, id, existing, previous, req.Picture)
	if err != nil {
		return nil, fmt.Errorf("update gallery %s: %w", id, err)
	}
	if !res.Found() {
		return nil, model.ErrGalleryNotFound
	}
	return existing.ToResponse(s.pictures.Resolve(ctx, existing)), nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.pictures.Delete(ctx, existing)
	if err != nil {
		return fmt.Errorf("delete gallery %s: %w", id, err)
	}
	if !deleted {
		return model.ErrGalleryNotFound
	}
	return nil
}

func (s *galleryService) CountByArtist(ctx context.Context, artistID string) (int64, error) {
	return s.repo.Count(ctx, repository.Where(repository.Eq("artist_id", artistID)))
}

// ListByArtist returns the artist's pictures, newest first, with resolved URLs.
func (s *galleryService) ListByArtist(ctx context.Context, artistID string) ([]artistmodel.Picture, error) {
	galleries, err := s.repo.Find(ctx, repository.Where(repository.Eq("artist_id", artistID)))
	if err != nil {
		return nil, err
	}

	out := make([]artistmodel.Picture, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, artistmodel.Picture{ID: g.ID, Picture: s.pictures.Resolve(ctx, g)})
	}
	return out, nil
}

func (s *galleryService) ensureArtist(ctx context.Context, artistID string) error {
	_, err := s.artists.GetByID(ctx, artistID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.ErrUnknownArtist
	}
	if err != nil {
		return fmt.Errorf("get artist %s: %w", artistID, err)
	}
	return nil
}

func (s *galleryService) find(ctx context.Context, id string) (*model.Gallery, error) {
	g, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.ErrGalleryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery %s: %w", id, err)
	}
	return g, nil
}
