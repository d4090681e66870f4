package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/apperr"
	"htc-backend/internal/shared/utils"
	"htc-backend/pkg/repository"
)

type CreateGalleryRequest struct {
	ArtistID  string
	ShowOnTop bool
	Picture   *storage.File
}

// Validate checks the picture before the artist reference.
func (r *CreateGalleryRequest) Validate() error {
	if r.Picture == nil {
		return apperr.Validation(MsgPictureRequired)
	}
	return utils.FirstInvalid(
		utils.Field(r.ArtistID, validation.Required.Error(MsgArtistIDRequired)),
	)
}

type UpdateGalleryRequest struct {
	ArtistID  *string
	ShowOnTop *bool
	Picture   *storage.File
}

func (r *UpdateGalleryRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.ArtistID, validation.When(r.ArtistID != nil, validation.Required.Error(MsgArtistIDRequired))),
	)
}

func (r *UpdateGalleryRequest) Apply(g *Gallery) {
	if r.ArtistID != nil {
		g.ArtistID = *r.ArtistID
	}
	if r.ShowOnTop != nil {
		g.ShowOnTop = *r.ShowOnTop
	}
}

type ListQuery struct {
	Page         int
	PerPage      int
	ArtistID     string
	ShowOnTop    bool
	HasShowOnTop bool
}

func (q ListQuery) Filter() repository.Filter {
	return repository.Where(
		repository.When(q.ArtistID != "", repository.Eq("artist_id", q.ArtistID)),
		repository.When(q.HasShowOnTop, repository.Eq("show_on_top", q.ShowOnTop)),
	)
}

func (q ListQuery) PageQuery() repository.PageQuery {
	return repository.PageQuery{Page: q.Page, PageSize: q.PerPage, Filter: q.Filter()}
}
