package model

import "htc-backend/internal/shared/apperr"

const (
	MsgNameRequired  = "Name is required"
	MsgStyleRequired = "Style is required"
	MsgInvalidLinkX  = "Invalid URL format for link_x"
)

var ErrArtistNotFound = apperr.NotFound("Artist not found")
