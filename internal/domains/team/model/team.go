package model

import (
	"time"

	"htc-backend/pkg/repository"
)

// Member is one person on the team page.
type Member struct {
	repository.Base `bson:",inline"`
	Name            string `bson:"name" json:"name"`
	Description     string `bson:"description" json:"description"`
	Position        string `bson:"position" json:"position"`
	Avatar          string `bson:"avatar" json:"avatar"`
	LinkX           string `bson:"link_x" json:"linkX"`
	Disabled        bool   `bson:"disabled" json:"disabled"`
}

func New() *Member { return &Member{} }

type MemberResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Position    string    `json:"position"`
	Avatar      string    `json:"avatar"`
	LinkX       string    `json:"linkX"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *Member) ToResponse(avatarURL string) *MemberResponse {
	return &MemberResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Position:    m.Position,
		Avatar:      avatarURL,
		LinkX:       m.LinkX,
		Disabled:    m.Disabled,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
