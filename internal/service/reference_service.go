package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/model"
	"intern-hub/backend/internal/repository"
)

// ── 参考数据模块业务错误 ──

var (
	ErrCampusNotFound = errors.New("校区不存在")
	ErrDeptNotFound   = errors.New("院系不存在")
	ErrTagNotFound    = errors.New("标签不存在")
	ErrCampusExists   = errors.New("校区代码已存在")
	ErrTagExists      = errors.New("标签名称已存在")
)

// ReferenceService 参考数据（校区 / 院系 / 标签）业务接口
type ReferenceService interface {
	CreateCampus(ctx context.Context, req *dto.CreateCampusRequest) (*dto.CampusResponse, error)
	ListCampuses(ctx context.Context) ([]dto.CampusResponse, error)
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context, campusID string) ([]dto.DepartmentResponse, error)
	CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	ListTags(ctx context.Context, category string) ([]dto.TagResponse, error)
}

type referenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReferenceService 创建 ReferenceService 实例
func NewReferenceService(repo *repository.Repository, logger *zap.Logger) ReferenceService {
	return &referenceService{repo: repo, logger: logger}
}

func (s *referenceService) CreateCampus(ctx context.Context, req *dto.CreateCampusRequest) (*dto.CampusResponse, error) {
	campus := &model.Campus{
		Name:        req.Name,
		Code:        req.Code,
		Address:     req.Address,
		Description: req.Description,
	}
	if err := s.repo.Campus.Create(ctx, campus); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCampusExists
		}
		s.logger.Error("创建校区失败", zap.Error(err))
		return nil, err
	}
	return toCampusResponse(campus), nil
}

func (s *referenceService) ListCampuses(ctx context.Context) ([]dto.CampusResponse, error) {
	campuses, err := s.repo.Campus.List(ctx)
	if err != nil {
		s.logger.Error("查询校区列表失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.CampusResponse, 0, len(campuses))
	for i := range campuses {
		resp = append(resp, *toCampusResponse(&campuses[i]))
	}
	return resp, nil
}

func (s *referenceService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	// 校区必须存在
	if _, err := s.repo.Campus.GetByID(ctx, req.CampusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampusNotFound
		}
		s.logger.Error("查询校区失败", zap.Error(err))
		return nil, err
	}

	dept := &model.Department{Name: req.Name, CampusID: req.CampusID}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建院系失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Department.GetByID(ctx, dept.DepartmentID)
	if err != nil {
		s.logger.Error("查询院系失败", zap.Error(err))
		return nil, err
	}
	return toDepartmentResponse(created), nil
}

func (s *referenceService) ListDepartments(ctx context.Context, campusID string) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx, campusID)
	if err != nil {
		s.logger.Error("查询院系列表失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		resp = append(resp, *toDepartmentResponse(&depts[i]))
	}
	return resp, nil
}

func (s *referenceService) CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	tag := &model.Tag{Name: req.Name, Category: req.Category}
	if err := s.repo.Tag.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		s.logger.Error("创建标签失败", zap.Error(err))
		return nil, err
	}
	return toTagResponse(tag), nil
}

func (s *referenceService) ListTags(ctx context.Context, category string) ([]dto.TagResponse, error) {
	tags, err := s.repo.Tag.List(ctx, category)
	if err != nil {
		s.logger.Error("查询标签列表失败", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		resp = append(resp, *toTagResponse(&tags[i]))
	}
	return resp, nil
}

// ── DTO 转换 ──

func toCampusResponse(campus *model.Campus) *dto.CampusResponse {
	return &dto.CampusResponse{
		ID:          campus.CampusID,
		Name:        campus.Name,
		Code:        campus.Code,
		Address:     campus.Address,
		Description: campus.Description,
	}
}

func toDepartmentResponse(dept *model.Department) *dto.DepartmentResponse {
	resp := &dto.DepartmentResponse{ID: dept.DepartmentID, Name: dept.Name}
	if dept.Campus != nil {
		resp.Campus = toCampusResponse(dept.Campus)
	}
	return resp
}

func toTagResponse(tag *model.Tag) *dto.TagResponse {
	return &dto.TagResponse{ID: tag.TagID, Name: tag.Name, Category: tag.Category}
}
