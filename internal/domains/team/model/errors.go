package model

import "htc-backend/internal/shared/apperr"

const (
	MsgNameRequired     = "Name is required"
	MsgPositionRequired = "Position is required"
	MsgInvalidLinkX     = "Invalid URL format for link_x"
)

var ErrMemberNotFound = apperr.NotFound("Team member not found")
