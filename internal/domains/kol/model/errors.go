package model

import "htc-backend/internal/shared/apperr"

const (
	MsgNameRequired = "Name is required"
	MsgInvalidLinkX = "Invalid URL format for link_x"
)

var ErrKolNotFound = apperr.NotFound("KOL not found")
