package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-hub/backend/internal/authz"
	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/model"
	"intern-hub/backend/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrForbidden  = errors.New("没有权限执行该操作")
	ErrSelfToggle = errors.New("不能停用自己的账号")
)

// UserService 用户业务接口
type UserService interface {
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	ToggleActive(ctx context.Context, actor authz.Actor, targetID string) (*dto.ToggleActiveResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// UpdateProfile 本人资料部分更新：请求中缺省（nil）的字段保持不变
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Course != nil {
		user.Course = *req.Course
	}
	if req.GPA != nil {
		user.GPA = req.GPA
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, repository.UserListFilter{
		Role:    model.Role(req.Role),
		Keyword: req.Keyword,
		Offset:  req.GetOffset(),
		Limit:   req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *toUserResponse(&users[i]))
	}
	return resp, total, nil
}

// ToggleActive 切换目标用户激活状态；管理员不可切换自己（防自锁）
func (s *userService) ToggleActive(ctx context.Context, actor authz.Actor, targetID string) (*dto.ToggleActiveResponse, error) {
	if !authz.Can(actor, authz.ActionUserToggleActive, authz.Resource{OwnerID: targetID}) {
		if actor.Role == model.RoleAdmin && actor.ID == targetID {
			return nil, ErrSelfToggle
		}
		return nil, ErrForbidden
	}

	user, err := s.repo.User.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户激活状态已切换",
		zap.String("target_id", targetID),
		zap.Bool("is_active", user.IsActive),
		zap.String("operator_id", actor.ID))

	return &dto.ToggleActiveResponse{ID: user.UserID, IsActive: user.IsActive}, nil
}
