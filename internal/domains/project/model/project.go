package model

import (
	"time"

	"htc-backend/pkg/repository"
)

const DefaultSize = 0.3

// Project is a marker on the earth map. Deleting a project only deactivates it.
type Project struct {
	repository.Base `bson:",inline"`
	ProjectName     string  `bson:"project_name" json:"projectName"`
	Description     string  `bson:"description" json:"description"`
	XLink           string  `bson:"x_link" json:"xLink"`
	Logo            string  `bson:"logo" json:"logo"`
	Lat             float64 `bson:"lat" json:"lat"`
	Lng             float64 `bson:"lng" json:"lng"`
	Size            float64 `bson:"size" json:"size"`
	IsActive        bool    `bson:"is_active" json:"isActive"`
}

func New() *Project { return &Project{} }

type ProjectResponse struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"projectName"`
	Description string    `json:"description"`
	XLink       string    `json:"xLink"`
	Logo        string    `json:"logo"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Size        float64   `json:"size"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Project) ToResponse(logoURL string) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		ProjectName: p.ProjectName,
		Description: p.Description,
		XLink:       p.XLink,
		Logo:        logoURL,
		Lat:         p.Lat,
		Lng:         p.Lng,
		Size:        p.Size,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
