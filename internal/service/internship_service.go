package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/model"
	"intern-hub/backend/internal/repository"
)

// ── 实习岗位模块业务错误 ──

var (
	ErrInternshipNotFound        = errors.New("实习岗位不存在")
	ErrInternshipInactive        = errors.New("实习岗位未开放申请")
	ErrInternshipHasApplications = errors.New("岗位已有申请记录，不能删除")
	ErrInvalidStatus             = errors.New("未知的状态值")
)

// InternshipService 实习岗位业务接口
// 学生目录只暴露 active 岗位；draft / expired 仅管理员可见（include_all）
type InternshipService interface {
	Create(ctx context.Context, creatorID string, req *dto.CreateInternshipRequest) (*dto.InternshipResponse, error)
	Get(ctx context.Context, id string, isAdmin bool) (*dto.InternshipResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateInternshipRequest) (*dto.InternshipResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *dto.InternshipListRequest, isAdmin bool) ([]dto.InternshipResponse, int64, error)
}

type internshipService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInternshipService 创建 InternshipService 实例
func NewInternshipService(repo *repository.Repository, logger *zap.Logger) InternshipService {
	return &internshipService{repo: repo, logger: logger}
}

func (s *internshipService) Create(ctx context.Context, creatorID string, req *dto.CreateInternshipRequest) (*dto.InternshipResponse, error) {
	// 1. 校区 / 院系必须存在
	if _, err := s.repo.Campus.GetByID(ctx, req.CampusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampusNotFound
		}
		s.logger.Error("查询校区失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeptNotFound
		}
		s.logger.Error("查询院系失败", zap.Error(err))
		return nil, err
	}

	// 2. 状态缺省为 draft
	status := model.InternshipDraft
	if req.Status != "" {
		status = model.InternshipStatus(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	deadline, err := parseRFC3339Ptr(req.Deadline)
	if err != nil {
		return nil, err
	}

	internship := &model.Internship{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Location:         req.Location,
		Duration:         req.Duration,
		Salary:           req.Salary,
		Deadline:         deadline,
		ContactName:      req.ContactName,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		Status:           status,
		CampusID:         req.CampusID,
		DepartmentID:     req.DepartmentID,
		CreatedByID:      creatorID,
	}
	var tags []model.Tag
	if len(req.TagIDs) > 0 {
		tags, err = s.resolveTags(ctx, req.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	// 3. 行插入与标签挂接在同一事务内完成
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.Internship.Create(ctx, internship); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建岗位失败", zap.Error(err))
		return nil, err
	}
	if len(tags) > 0 {
		if err := txRepo.Internship.ReplaceTags(ctx, internship, tags); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("设置岗位标签失败", zap.Error(err))
			return nil, err
		}
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	created, err := s.repo.Internship.GetByID(ctx, internship.InternshipID)
	if err != nil {
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("岗位创建成功", zap.String("internship_id", internship.InternshipID), zap.String("title", req.Title))
	return toInternshipResponse(created), nil
}

// Get 查询岗位详情；非 active 岗位对学生视为不存在
func (s *internshipService) Get(ctx context.Context, id string, isAdmin bool) (*dto.InternshipResponse, error) {
	internship, err := s.repo.Internship.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}
	if !isAdmin && internship.Status != model.InternshipActive {
		return nil, ErrInternshipNotFound
	}
	return toInternshipResponse(internship), nil
}

func (s *internshipService) Update(ctx context.Context, id string, req *dto.UpdateInternshipRequest) (*dto.InternshipResponse, error) {
	internship, err := s.repo.Internship.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		internship.Title = *req.Title
	}
	if req.Description != nil {
		internship.Description = *req.Description
	}
	if req.Requirements != nil {
		internship.Requirements = *req.Requirements
	}
	if req.Responsibilities != nil {
		internship.Responsibilities = *req.Responsibilities
	}
	if req.Benefits != nil {
		internship.Benefits = *req.Benefits
	}
	if req.Location != nil {
		internship.Location = *req.Location
	}
	if req.Duration != nil {
		internship.Duration = *req.Duration
	}
	if req.Salary != nil {
		internship.Salary = *req.Salary
	}
	if req.Deadline != nil {
		deadline, err := parseRFC3339Ptr(req.Deadline)
		if err != nil {
			return nil, err
		}
		internship.Deadline = deadline
	}
	if req.ContactName != nil {
		internship.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		internship.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		internship.ContactPhone = *req.ContactPhone
	}
	if req.Status != nil {
		status := model.InternshipStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		internship.Status = status
	}
	if req.CampusID != nil {
		if _, err := s.repo.Campus.GetByID(ctx, *req.CampusID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCampusNotFound
			}
			s.logger.Error("查询校区失败", zap.Error(err))
			return nil, err
		}
		internship.CampusID = *req.CampusID
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDeptNotFound
			}
			s.logger.Error("查询院系失败", zap.Error(err))
			return nil, err
		}
		internship.DepartmentID = *req.DepartmentID
	}

	// tag_ids 非 nil 时整体替换：请求中的集合就是新集合，空数组即清空
	var tags []model.Tag
	if req.TagIDs != nil {
		tags, err = s.resolveTags(ctx, *req.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.Internship.Update(ctx, internship); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新岗位失败", zap.Error(err))
		return nil, err
	}
	if req.TagIDs != nil {
		if err := txRepo.Internship.ReplaceTags(ctx, internship, tags); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("替换岗位标签失败", zap.Error(err))
			return nil, err
		}
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	updated, err := s.repo.Internship.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}
	return toInternshipResponse(updated), nil
}

// Delete 删除岗位；已有申请记录的岗位拒绝删除（保护历史数据）
func (s *internshipService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Internship.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInternshipNotFound
		}
		s.logger.Error("查询岗位失败", zap.Error(err))
		return err
	}

	count, err := s.repo.Internship.CountApplications(ctx, id)
	if err != nil {
		s.logger.Error("统计岗位申请数失败", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrInternshipHasApplications
	}

	if err := s.repo.Internship.Delete(ctx, id); err != nil {
		s.logger.Error("删除岗位失败", zap.Error(err))
		return err
	}
	s.logger.Info("岗位已删除", zap.String("internship_id", id))
	return nil
}

func (s *internshipService) List(ctx context.Context, req *dto.InternshipListRequest, isAdmin bool) ([]dto.InternshipResponse, int64, error) {
	// 默认只返回 active；include_all 仅对管理员放开
	statuses := []model.InternshipStatus{model.InternshipActive}
	if isAdmin && req.IncludeAll {
		statuses = nil
	}

	internships, total, err := s.repo.Internship.List(ctx, repository.InternshipListFilter{
		Statuses:     statuses,
		Search:       req.Search,
		CampusID:     req.CampusID,
		DepartmentID: req.DepartmentID,
		Offset:       req.GetOffset(),
		Limit:        req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询岗位列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.InternshipResponse, 0, len(internships))
	for i := range internships {
		resp = append(resp, *toInternshipResponse(&internships[i]))
	}
	return resp, total, nil
}

// resolveTags 按 ID 批量解析标签；任一 ID 不存在即整体拒绝
func (s *internshipService) resolveTags(ctx context.Context, ids []string) ([]model.Tag, error) {
	tags, err := s.repo.Tag.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("查询标签失败", zap.Error(err))
		return nil, err
	}
	if len(tags) != len(uniqueStrings(ids)) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func parseRFC3339Ptr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, errors.New("时间格式无效，应为 RFC3339")
	}
	return &t, nil
}

// ── DTO 转换 ──

func toInternshipResponse(in *model.Internship) *dto.InternshipResponse {
	resp := &dto.InternshipResponse{
		ID:               in.InternshipID,
		Title:            in.Title,
		Description:      in.Description,
		Requirements:     in.Requirements,
		Responsibilities: in.Responsibilities,
		Benefits:         in.Benefits,
		Location:         in.Location,
		Duration:         in.Duration,
		Salary:           in.Salary,
		ContactName:      in.ContactName,
		ContactEmail:     in.ContactEmail,
		ContactPhone:     in.ContactPhone,
		Status:           string(in.Status),
		CreatedAt:        in.CreatedAt.Format(time.RFC3339),
	}
	if in.Deadline != nil {
		resp.Deadline = in.Deadline.Format(time.RFC3339)
	}
	if in.Campus != nil {
		resp.Campus = toCampusResponse(in.Campus)
	}
	if in.Department != nil {
		resp.Department = toDepartmentResponse(in.Department)
	}
	for i := range in.Tags {
		resp.Tags = append(resp.Tags, *toTagResponse(&in.Tags[i]))
	}
	return resp
}
