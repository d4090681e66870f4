package service

import (
	"context"
	"fmt"

	artistmodel "htc-backend/internal/domains/artist/model"
	"htc-backend/internal/domains/dashboard/model"
	gallerymodel "htc-backend/internal/domains/gallery/model"
	kolmodel "htc-backend/internal/domains/kol/model"
	petmodel "htc-backend/internal/domains/pet/model"
	projectmodel "htc-backend/internal/domains/project/model"
	teammodel "htc-backend/internal/domains/team/model"
	"htc-backend/pkg/repository"
)

// Source is the read side of one collection as the dashboard sees it.
type Source interface {
	Count(ctx context.Context) (int64, error)
	// Recent returns up to n activities, newest first. Time is left for the caller to fill.
	Recent(ctx context.Context, n int) ([]model.Activity, error)
}

type collectionSource[T repository.Entity] struct {
	kind   string
	repo   repository.Repository[T]
	filter repository.Filter
	label  func(T) string
}

func NewSource[T repository.Entity](kind string, repo repository.Repository[T], filter repository.Filter, label func(T) string) Source {
	return &collectionSource[T]{kind: kind, repo: repo, filter: filter, label: label}
}

func (s *collectionSource[T]) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx, s.filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.repo.Collection(), err)
	}
	return n, nil
}

func (s *collectionSource[T]) Recent(ctx context.Context, n int) ([]model.Activity, error) {
	page, err := s.repo.GetPaged(ctx, repository.PageQuery{Page: 1, PageSize: n, Filter: s.filter})
	if err != nil {
		return nil, fmt.Errorf("recent %s: %w", s.repo.Collection(), err)
	}

	out := make([]model.Activity, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, model.Activity{
			ID:        s.kind + "_" + item.GetID(),
			Type:      s.kind,
			Action:    model.ActionCreated,
			Name:      s.label(item),
			CreatedAt: item.GetCreatedAt(),
		})
	}
	return out, nil
}

// Sources lists the collections the dashboard reads. Pets and projects only feed the counters.
type Sources struct {
	Artists   Source
	Galleries Source
	Kols      Source
	Teams     Source
	Pets      Source
	Projects  Source
}

func NewSources(
	artists repository.Repository[*artistmodel.Artist],
	galleries repository.Repository[*gallerymodel.Gallery],
	kols repository.Repository[*kolmodel.Kol],
	teams repository.Repository[*teammodel.Member],
	pets repository.Repository[*petmodel.Pet],
	projects repository.Repository[*projectmodel.Project],
) Sources {
	all := repository.Filter{}
	return Sources{
		Artists: NewSource("artist", artists, all, func(a *artistmodel.Artist) string {
			return "Artist: " + a.Name
		}),
		Galleries: NewSource("gallery", galleries, all, func(g *gallerymodel.Gallery) string {
			return "Gallery: " + g.ID
		}),
		Kols: NewSource("kol", kols, all, func(k *kolmodel.Kol) string {
			return "KOL: " + k.Name
		}),
		Teams: NewSource("team", teams, all, func(m *teammodel.Member) string {
			return "Team: " + m.Name
		}),
		Pets: NewSource("pet", pets, all, func(p *petmodel.Pet) string {
			return "Pet: " + p.Name
		}),
		Projects: NewSource("project", projects, projectmodel.ActiveFilter(), func(p *projectmodel.Project) string {
			return "Project: " + p.ProjectName
		}),
	}
}
