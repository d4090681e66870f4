package service

import (
	"context"

	"htc-backend/internal/domains/artist/model"
	"htc-backend/internal/shared/response"
)

// Service defines the artist use cases exposed over HTTP.
type Service interface {
	List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.ArtistResponse], error)
	Get(ctx context.Context, id string) (*model.ArtistResponse, error)
	Create(ctx context.Context, req *model.CreateArtistRequest) (*model.ArtistResponse, error)
	Update(ctx context.Context, id string, req *model.UpdateArtistRequest) (*model.ArtistResponse, error)
	Delete(ctx context.Context, id string) error
	// Images returns the artist together with every gallery picture that references it.
	Images(ctx context.Context, id string) (*model.ArtistImagesResponse, error)
}

// Pictures is the gallery side of an artist.
type Pictures interface {
	CountByArtist(ctx context.Context, artistID string) (int64, error)
	ListByArtist(ctx context.Context, artistID string) ([]model.Picture, error)
}
