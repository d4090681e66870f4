package model

import "htc-backend/internal/shared/apperr"

const (
	MsgProjectNameRequired = "Project name is required"
	MsgProjectNameTooLong  = "Project name must not exceed 200 characters"
	MsgDescriptionTooLong  = "Description must not exceed 1000 characters"
	MsgXLinkTooLong        = "X link must not exceed 500 characters"
	MsgInvalidXLink        = "Invalid URL format for xLink"
	MsgInvalidLogoURL      = "Invalid URL format for logoUrl"
	MsgInvalidLat          = "Latitude must be between -90 and 90"
	MsgInvalidLng          = "Longitude must be between -180 and 180"
	MsgInvalidSize         = "Size must be between 0.1 and 2.0"
)

var ErrProjectNotFound = apperr.NotFound("Project not found")
