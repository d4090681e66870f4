package model

import (
	"time"

	"htc-backend/pkg/repository"
)

// Kol is a key opinion leader featured on the site.
type Kol struct {
	repository.Base `bson:",inline"`
	Name            string `bson:"name" json:"name"`
	LinkX           string `bson:"link_x" json:"linkX"`
	Avatar          string `bson:"avatar" json:"avatar"`
	Disabled        bool   `bson:"disabled" json:"disabled"`
}

func New() *Kol { return &Kol{} }

type KolResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LinkX     string    `json:"linkX"`
	Avatar    string    `json:"avatar"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (k *Kol) ToResponse(avatarURL string) *KolResponse {
	return &KolResponse{
		ID:        k.ID,
		Name:      k.Name,
		LinkX:     k.LinkX,
		Avatar:    avatarURL,
		Disabled:  k.Disabled,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}
