package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/utils"
	"htc-backend/pkg/repository"
)

type CreateArtistRequest struct {
	Name     string
	Style    string
	LinkX    string
	XTag     string
	Disabled bool
	Avatar   *storage.File
}

func (r *CreateArtistRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.Required.Error(MsgNameRequired)),
		utils.Field(r.Style, validation.Required.Error(MsgStyleRequired)),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

func (r *CreateArtistRequest) ToArtist() *Artist {
	return &Artist{
		Name:     r.Name,
		Style:    r.Style,
		LinkX:    r.LinkX,
		XTag:     r.XTag,
		Disabled: r.Disabled,
	}
}

// UpdateArtistRequest holds only the fields present in the request.
type UpdateArtistRequest struct {
	Name     *string
	Style    *string
	LinkX    *string
	XTag     *string
	Disabled *bool
	Avatar   *storage.File
}

func (r *UpdateArtistRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.When(r.Name != nil, validation.Required.Error(MsgNameRequired))),
		utils.Field(r.Style, validation.When(r.Style != nil, validation.Required.Error(MsgStyleRequired))),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

func (r *UpdateArtistRequest) Apply(a *Artist) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Style != nil {
		a.Style = *r.Style
	}
	if r.LinkX != nil {
		a.LinkX = *r.LinkX
	}
	if r.XTag != nil {
		a.XTag = *r.XTag
	}
	if r.Disabled != nil {
		a.Disabled = *r.Disabled
	}
}

// ListQuery holds the list filters. Zero values are not applied.
type ListQuery struct {
	Page            int
	PerPage         int
	Name            string
	Style           string
	CreatedFrom     time.Time
	IncludeDisabled bool
}

func (q ListQuery) Filter() repository.Filter {
	return repository.Where(
		repository.When(!q.IncludeDisabled, repository.Ne("disabled", true)),
		repository.When(q.Name != "", repository.Contains("name", q.Name)),
		repository.When(q.Style != "", repository.Contains("style", q.Style)),
		repository.When(!q.CreatedFrom.IsZero(), repository.Gte(repository.FieldCreatedAt, q.CreatedFrom)),
	)
}

func (q ListQuery) PageQuery() repository.PageQuery {
	return repository.PageQuery{Page: q.Page, PageSize: q.PerPage, Filter: q.Filter()}
}
