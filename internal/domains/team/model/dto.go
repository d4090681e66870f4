package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/utils"
	"htc-backend/pkg/repository"
)

type CreateMemberRequest struct {
	Name        string
	Description string
	Position    string
	LinkX       string
	Disabled    bool
	Avatar      *storage.File
}

func (r *CreateMemberRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.Required.Error(MsgNameRequired)),
		utils.Field(r.Position, validation.Required.Error(MsgPositionRequired)),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

func (r *CreateMemberRequest) ToMember() *Member {
	return &Member{
		Name:        r.Name,
		Description: r.Description,
		Position:    r.Position,
		LinkX:       r.LinkX,
		Disabled:    r.Disabled,
	}
}

type UpdateMemberRequest struct {
	Name        *string
	Description *string
	Position    *string
	LinkX       *string
	Disabled    *bool
	Avatar      *storage.File
}

func (r *UpdateMemberRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.When(r.Name != nil, validation.Required.Error(MsgNameRequired))),
		utils.Field(r.Position, validation.When(r.Position != nil, validation.Required.Error(MsgPositionRequired))),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

func (r *UpdateMemberRequest) Apply(m *Member) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Position != nil {
		m.Position = *r.Position
	}
	if r.LinkX != nil {
		m.LinkX = *r.LinkX
	}
	if r.Disabled != nil {
		m.Disabled = *r.Disabled
	}
}

type ListQuery struct {
	Page            int
	PerPage         int
	Name            string
	Position        string
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
			repository.When(q.Position != "", repository.Contains("position", q.Position)),
			repository.When(!q.CreatedFrom.IsZero(), repository.Gte(repository.FieldCreatedAt, q.CreatedFrom)),
		),
	}
}
