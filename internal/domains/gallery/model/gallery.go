package model

import (
	"time"

	"htc-backend/pkg/repository"
)

// Gallery is one picture of an artist. ShowOnTop pins it to the home page.
type Gallery struct {
	repository.Base `bson:",inline"`
	ArtistID        string `bson:"artist_id" json:"artistId"`
	Picture         string `bson:"picture" json:"picture"`
	ShowOnTop       bool   `bson:"show_on_top" json:"showOnTop"`
}

func New() *Gallery { return &Gallery{} }

type GalleryResponse struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artistId"`
	Picture   string    `json:"picture"`
	ShowOnTop bool      `json:"showOnTop"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Gallery) ToResponse(pictureURL string) *GalleryResponse {
	return &GalleryResponse{
		ID:        g.ID,
		ArtistID:  g.ArtistID,
		Picture:   pictureURL,
		ShowOnTop: g.ShowOnTop,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
