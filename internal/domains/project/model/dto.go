package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/utils"
	"htc-backend/pkg/repository"
)

// logoURL accepts an absolute http(s) URL or a root-relative path such as /uploads/logos/x.png.
func logoURL() validation.Rule {
	absolute := utils.AbsoluteURL(MsgInvalidLogoURL)
	return validation.By(func(value interface{}) error {
		v, _ := validation.Indirect(value)
		s, _ := v.(string)
		if strings.HasPrefix(s, "/") {
			if strings.HasPrefix(s, "//") || strings.Contains(s, "..") {
				return errors.New(MsgInvalidLogoURL)
			}
			return nil
		}
		return absolute.Validate(s)
	})
}

type CreateProjectRequest struct {
	ProjectName string
	Description string
	XLink       string
	LogoURL     string
	Lat         float64
	Lng         float64
	Size        float64
	IsActive    bool
	Logo        *storage.File
}

// NewCreateProjectRequest returns a request carrying the defaults for absent fields.
func NewCreateProjectRequest() *CreateProjectRequest {
	return &CreateProjectRequest{Size: DefaultSize, IsActive: true}
}

func (r *CreateProjectRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.ProjectName,
			validation.Required.Error(MsgProjectNameRequired),
			validation.RuneLength(0, 200).Error(MsgProjectNameTooLong)),
		utils.Field(r.Description, validation.RuneLength(0, 1000).Error(MsgDescriptionTooLong)),
		utils.Field(r.XLink,
			validation.RuneLength(0, 500).Error(MsgXLinkTooLong),
			utils.AbsoluteURL(MsgInvalidXLink)),
		utils.Field(r.LogoURL, logoURL()),
		utils.Field(r.Lat, utils.Between(-90, 90, MsgInvalidLat)),
		utils.Field(r.Lng, utils.Between(-180, 180, MsgInvalidLng)),
		utils.Field(r.Size, utils.Between(0.1, 2.0, MsgInvalidSize)),
	)
}

func (r *CreateProjectRequest) ToProject() *Project {
	return &Project{
		ProjectName: r.ProjectName,
		Description: r.Description,
		XLink:       r.XLink,
		Lat:         r.Lat,
		Lng:         r.Lng,
		Size:        r.Size,
		IsActive:    r.IsActive,
	}
}

type UpdateProjectRequest struct {
	ProjectName *string
	Description *string
	XLink       *string
	LogoURL     *string
	Lat         *float64
	Lng         *float64
	Size        *float64
	IsActive    *bool
	Logo        *storage.File
}

func (r *UpdateProjectRequest) Validate() error {
	return utils.FirstInvalid(
		utils.Field(r.ProjectName,
			validation.When(r.ProjectName != nil, validation.Required.Error(MsgProjectNameRequired)),
			validation.RuneLength(0, 200).Error(MsgProjectNameTooLong)),
		utils.Field(r.Description, validation.RuneLength(0, 1000).Error(MsgDescriptionTooLong)),
		utils.Field(r.XLink,
			validation.RuneLength(0, 500).Error(MsgXLinkTooLong),
			utils.AbsoluteURL(MsgInvalidXLink)),
		utils.Field(r.LogoURL, logoURL()),
		utils.Field(r.Lat, utils.Between(-90, 90, MsgInvalidLat)),
		utils.Field(r.Lng, utils.Between(-180, 180, MsgInvalidLng)),
		utils.Field(r.Size, utils.Between(0.1, 2.0, MsgInvalidSize)),
	)
}

// Apply merges the present fields. An uploaded logo is attached later and wins over LogoURL.
func (r *UpdateProjectRequest) Apply(p *Project) {
	if r.ProjectName != nil {
		p.ProjectName = *r.ProjectName
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.XLink != nil {
		p.XLink = *r.XLink
	}
	if r.LogoURL != nil && r.Logo == nil {
		p.Logo = *r.LogoURL
	}
	if r.Lat != nil {
		p.Lat = *r.Lat
	}
	if r.Lng != nil {
		p.Lng = *r.Lng
	}
	if r.Size != nil {
		p.Size = *r.Size
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

type ListQuery struct {
	Page        int
	PerPage     int
	ProjectName string
}

func ActiveFilter() repository.Filter {
	return repository.Where(repository.Eq("is_active", true))
}

func (q ListQuery) PageQuery() repository.PageQuery {
	return repository.PageQuery{
		Page:     q.Page,
		PageSize: q.PerPage,
		Filter: ActiveFilter().And(
			repository.When(q.ProjectName != "", repository.Contains("project_name", q.ProjectName)),
		),
	}
}
