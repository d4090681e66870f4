package model

import (
	"time"

	"htc-backend/pkg/repository"
)

// Artist is a creator listed on the site. Disabled artists are hidden from listings.
type Artist struct {
	repository.Base `bson:",inline"`
	Name            string `bson:"name" json:"name"`
	Style           string `bson:"style" json:"style"`
	LinkX           string `bson:"link_x" json:"linkX"`
	XTag            string `bson:"x_tag" json:"xTag"`
	Avatar          string `bson:"avatar" json:"avatar"`
	Disabled        bool   `bson:"disabled" json:"disabled"`
}

func New() *Artist { return &Artist{} }

// ArtistResponse carries the resolved avatar URL and the gallery count.
type ArtistResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Style      string    `json:"style"`
	LinkX      string    `json:"linkX"`
	XTag       string    `json:"xTag"`
	Avatar     string    `json:"avatar"`
	Disabled   bool      `json:"disabled"`
	TotalImage int64     `json:"totalImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a *Artist) ToResponse(avatarURL string, totalImage int64) *ArtistResponse {
	return &ArtistResponse{
		ID:         a.ID,
		Name:       a.Name,
		Style:      a.Style,
		LinkX:      a.LinkX,
		XTag:       a.XTag,
		Avatar:     avatarURL,
		Disabled:   a.Disabled,
		TotalImage: totalImage,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// Picture is one gallery image of an artist.
type Picture struct {
	ID      string `json:"id"`
	Picture string `json:"picture"`
}

type ArtistImagesResponse struct {
	Artist   *ArtistResponse `json:"artist"`
	Pictures []Picture       `json:"pictures"`
}
