package docstore

import (
	"context"
	"strings"
)

// Entity kinds known to the application.
const (
	KindArtist  = "artist"
	KindGallery = "gallery"
	KindKol     = "kol"
	KindPet     = "pet"
	KindTeam    = "team"
	KindProject = "project"
)

// Collections maps an entity kind to the collection (or table) that stores it.
type Collections map[string]string

func DefaultCollections() Collections {
	return Collections{
		KindArtist:  "artists",
		KindGallery: "galleries",
		KindKol:     "kols",
		KindPet:     "pets",
		KindTeam:    "teams",
		KindProject: "projects",
	}
}

// Name falls back to the lowercased kind when no explicit mapping exists.
func (c Collections) Name(kind string) string {
	if name, ok := c[kind]; ok && name != "" {
		return name
	}
	return strings.ToLower(kind)
}

// Store is the long-lived connection shared by every repository of one backend.
type Store interface {
	Driver() string
	CollectionName(kind string) string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
