package service

import (
	"context"

	artistmodel "htc-backend/internal/domains/artist/model"
	"htc-backend/internal/domains/gallery/model"
	"htc-backend/internal/shared/response"
)

type Service interface {
	List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.GalleryResponse], error)
	Get(ctx context.Context, id string) (*model.GalleryResponse, error)
	Create(ctx context.Context, req *model.CreateGalleryRequest) (*model.GalleryResponse, error)
	Update(ctx context.Context, id string, req *model.UpdateGalleryRequest) (*model.GalleryResponse, error)
	Delete(ctx context.Context, id string) error

	CountByArtist(ctx context.Context, artistID string) (int64, error)
	ListByArtist(ctx context.Context, artistID string) ([]artistmodel.Picture, error)
}
