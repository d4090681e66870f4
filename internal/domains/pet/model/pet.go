package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/apperr"
	"htc-backend/internal/shared/utils"
	"htc-backend/pkg/repository"
)

const (
	MsgNameRequired = "Name is required"
	MsgInvalidLinkX = "Invalid URL format for link_x"
)

var ErrPetNotFound = apperr.NotFound("Pet not found")

type Pet struct {
	repository.Base `bson:",inline"`
	Name            string `bson:"name" json:"name"`
	LinkX           string `bson:"link_x" json:"linkX"`
	Avatar          string `bson:"avatar" json:"avatar"`
	Disabled        bool   `bson:"disabled" json:"disabled"`
}

func New() *Pet { return &Pet{} }

type PetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LinkX     string    `json:"linkX"`
	Avatar    string    `json:"avatar"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Pet) ToResponse(avatarURL string) *PetResponse {
	return &PetResponse{
		ID:        p.ID,
		Name:      p.Name,
		LinkX:     p.LinkX,
		Avatar:    avatarURL,
		Disabled:  p.Disabled,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type CreatePetRequest struct {
	Name     string
	LinkX    string
	Disabled bool
	Avatar   *storage.File
}

func (r *CreatePetRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.Required.Error(MsgNameRequired)),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

type UpdatePetRequest struct {
	Name     *string
	LinkX    *string
	Disabled *bool
	Avatar   *storage.File
}

func (r *UpdatePetRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.Name, validation.When(r.Name != nil, validation.Required.Error(MsgNameRequired))),
		utils.Field(r.LinkX, utils.AbsoluteURL(MsgInvalidLinkX)),
	)
}

func (r *UpdatePetRequest) Apply(p *Pet) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.LinkX != nil {
		p.LinkX = *r.LinkX
	}
	if r.Disabled != nil {
		p.Disabled = *r.Disabled
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
