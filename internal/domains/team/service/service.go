package service

import (
	"context"
	"errors"
	"fmt"

	"htc-backend/internal/domains/team/model"
	"htc-backend/internal/shared/media"
	"htc-backend/internal/shared/response"
	"htc-backend/pkg/repository"
)

var AvatarSlot = media.Slot[*model.Member]{
	Get: func(m *model.Member) string { return m.Avatar },
	Set: func(m *model.Member, v string) { m.Avatar = v },
}

type teamService struct {
	repo    repository.Repository[*model.Member]
	avatars *media.Manager[*model.Member]
}

func NewTeamService(repo repository.Repository[*model.Member], avatars *media.Manager[*model.Member]) Service {
	return &teamService{repo: repo, avatars: avatars}
}

func (s *teamService) List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.MemberResponse], error) {
	page, err := s.repo.GetPaged(ctx, q.PageQuery())
	if err != nil {
		return response.Paginated[*model.MemberResponse]{}, fmt.Errorf("list team members: %w", err)
	}

	items := make([]*model.MemberResponse, 0, len(page.Items))
	for _, m := range page.Items {
		items = append(items, m.ToResponse(s.avatars.Resolve(ctx, m)))
	}
	return response.NewPaginated(page, items), nil
}

func (s *teamService) Get(ctx context.Context, id string) (*model.MemberResponse, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.ToResponse(s.avatars.Resolve(ctx, m)), nil
}

func (s *teamService) Create(ctx context.Context, req *model.CreateMemberRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.avatars.Create(ctx, req.ToMember(), req.Avatar)
	if err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return created.ToResponse(s.avatars.Resolve(ctx, created)), nil
}

func (s *teamService) Update(ctx context.Context, id string, req *model.UpdateMemberRequest) (*model.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := existing.Avatar
	req.Apply(existing)

	res, err := s.avatars.Update(ctx, id, existing, previous, req.Avatar)
	if err != nil {
		return nil, fmt.Errorf("update team member %s: %w", id, err)
	}
	if !res.Found() {
		return nil, model.ErrMemberNotFound
	}
	return existing.ToResponse(s.avatars.Resolve(ctx, existing)), nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.avatars.Delete(ctx, existing)
	if err != nil {
		return fmt.Errorf("delete team member %s: %w", id, err)
	}
	if !deleted {
		return model.ErrMemberNotFound
	}
	return nil
}

func (s *teamService) find(ctx context.Context, id string) (*model.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, model.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get team member %s: %w", id, err)
	}
	return m, nil
}
