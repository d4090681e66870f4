package service

import (
	"context"

	"htc-backend/internal/domains/team/model"
	"htc-backend/internal/shared/response"
)

// Service defines the team member use cases.
type Service interface {
	List(ctx context.Context, q model.ListQuery) (response.Paginated[*model.MemberResponse], error)
	Get(ctx context.Context, id string) (*model.MemberResponse, error)
	Create(ctx context.Context, req *model.CreateMemberRequest) (*model.MemberResponse, error)
	Update(ctx context.Context, id string, req *model.UpdateMemberRequest) (*model.MemberResponse, error)
	Delete(ctx context.Context, id string) error
}
