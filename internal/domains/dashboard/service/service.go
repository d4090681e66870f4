package service

import (
	"context"
	"sort"
	"time"

	"htc-backend/internal/domains/dashboard/model"
)

type Service interface {
	Stats(ctx context.Context) (*model.Stats, error)
	Activities(ctx context.Context) ([]model.Activity, error)
}

type dashboardService struct {
	sources Sources
	now     func() time.Time
}

func NewDashboardService(sources Sources) Service {
	return &dashboardService{sources: sources, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	counters := []struct {
		source Source
		dst    *int64
	}{
		{s.sources.Artists, &stats.Artists},
		{s.sources.Galleries, &stats.Galleries},
		{s.sources.Kols, &stats.Kols},
		{s.sources.Teams, &stats.Teams},
		{s.sources.Pets, &stats.Pets},
		{s.sources.Projects, &stats.Projects},
	}
	for _, c := range counters {
		n, err := c.source.Count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return stats, nil
}

// Activities merges the newest documents of artists, galleries, kols and teams.
func (s *dashboardService) Activities(ctx context.Context) ([]model.Activity, error) {
	var all []model.Activity
	for _, src := range []Source{s.sources.Artists, s.sources.Galleries, s.sources.Kols, s.sources.Teams} {
		recent, err := src.Recent(ctx, model.RecentPerSource)
		if err != nil {
			return nil, err
		}
		all = append(all, recent...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > model.MaxActivities {
		all = all[:model.MaxActivities]
	}

	now := s.now().UTC()
	for i := range all {
		all[i].Time = model.TimeAgo(all[i].CreatedAt, now)
	}
	if all == nil {
		all = []model.Activity{}
	}
	return all, nil
}
