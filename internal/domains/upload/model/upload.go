package model

import (
	"strings"

	"htc-backend/internal/infrastructure/storage"
	"htc-backend/internal/shared/apperr"
)

// Kind is a standalone upload category. Each kind has its own namespace and file policy.
type Kind struct {
	Name      string
	Namespace string
	Policy    storage.FilePolicy
}

var kinds = map[string]Kind{
	"avatar": {Name: "avatar", Namespace: "avatars", Policy: storage.ImagePolicy},
	"logo":   {Name: "logo", Namespace: "logos", Policy: storage.LogoPolicy},
}

var (
	ErrUnknownKind     = apperr.NotFound("Unknown upload type")
	ErrInvalidFileName = apperr.Validation("Invalid file name")
	ErrFileNotFound    = apperr.NotFound("File not found")
)

const MsgFileDeleted = "File deleted successfully"

func LookupKind(name string) (Kind, error) {
	k, ok := kinds[name]
	if !ok {
		return Kind{}, ErrUnknownKind
	}
	return k, nil
}

// Key joins a bare file name to the kind's namespace. Names carrying a path are rejected.
func (k Kind) Key(fileName string) (string, error) {
	if fileName == "" || fileName == "." || strings.ContainsAny(fileName, `/\`) || strings.Contains(fileName, "..") {
		return "", ErrInvalidFileName
	}
	return k.Namespace + "/" + fileName, nil
}

type UploadResponse struct {
	URL          string `json:"url"`
	Key          string `json:"key"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}
