package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/utils"
	"htc-backend/pkg/repository"
)

type CreateKolRequest struct {
	Name     string
	LinkX    string
	Disabled bool
	Avatar   *storage.File
}

func (r *CreateKolRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.Required.Error(MsgNameRequired)),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

type UpdateKolRequest struct {
	Name     *string
	LinkX    *string
	Disabled *bool
	Avatar   *storage.File
}

func (r *UpdateKolRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.When(r.Name != nil, validation.Required.Error(MsgNameRequired))),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

func (r *UpdateKolRequest) Apply(k *Kol) {
	if r.Name != nil {
		k.Name = *r.Name
	}
	if r.LinkX != nil {
		k.LinkX = *r.LinkX
	}
	if r.Disabled != nil {
		k.Disabled = *r.Disabled
	}
}

type ListQuery struct {
	Page            int
	PerPage         int
	Name            string
	CreatedFrom     time.Time
	IncludeDisabled bool
}

func (q ListQuery) PageQuery() repository.PageQuery {
	return repository.PageQuery{
		Page:     q.Page,
		PageSize: q.PerPage,
		Filter: repository.Where(
			repository.When(!q.IncludeDisabled, repository.Ne("disabled", true)),
			repository.When(q.Name != "", repository.Contains("name", q.Name)),
			repository.When(!q.CreatedFrom.IsZero(), repository.Gte(repository.FieldCreatedAt, q.CreatedFrom)),
		),
	}
}
