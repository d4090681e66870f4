package model

import "htc-backend/internal/shared/apperr"

const (
	MsgPictureRequired  = "Picture is required"
	MsgArtistIDRequired = "Artist ID is required"
)

var (
	ErrGalleryNotFound = apperr.NotFound("Gallery not found")
	// ErrUnknownArtist is a bad reference in the request, not a missing resource.
	ErrUnknownArtist = apperr.Validation("Artist not found")
)
