package service

import (
	"context"

	"go.uber.org/zap"

	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/repository"
)

// 仪表盘最近申请条数与岗位排行条数
const (
	recentApplicationsLimit = 10
	topInternshipsLimit     = 5
)

// AdminService 管理后台业务接口
type AdminService interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	ApplicationStats(ctx context.Context) (*dto.ApplicationStatsResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

func (s *adminService) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	totalUsers, students, admins, active, err := s.repo.User.CountByRole(ctx)
	if err != nil {
		s.logger.Error("统计用户失败", zap.Error(err))
		return nil, err
	}

	totalInternships, activeN, draftN, expiredN, err := s.repo.Internship.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("统计岗位失败", zap.Error(err))
		return nil, err
	}

	appCounts, err := s.repo.Application.CountByStatus(ctx, "")
	if err != nil {
		s.logger.Error("统计申请失败", zap.Error(err))
		return nil, err
	}

	recent, err := s.repo.Application.ListRecent(ctx, recentApplicationsLimit)
	if err != nil {
		s.logger.Error("查询最近申请失败", zap.Error(err))
		return nil, err
	}

	top, err := s.repo.Internship.TopByApplications(ctx, topInternshipsLimit)
	if err != nil {
		s.logger.Error("统计岗位申请排行失败", zap.Error(err))
		return nil, err
	}
	topStats := make([]dto.TopInternshipStat, 0, len(top))
	for _, t := range top {
		topStats = append(topStats, dto.TopInternshipStat{
			InternshipID: t.InternshipID,
			Title:        t.Title,
			Applications: t.N,
		})
	}

	byCampus, err := s.repo.Internship.CountByCampus(ctx)
	if err != nil {
		s.logger.Error("统计校区岗位分布失败", zap.Error(err))
		return nil, err
	}
	campusStats := make([]dto.CampusInternshipStat, 0, len(byCampus))
	for _, c := range byCampus {
		campusStats = append(campusStats, dto.CampusInternshipStat{
			CampusID:    c.CampusID,
			Name:        c.Name,
			Internships: c.N,
		})
	}

	return &dto.DashboardStatsResponse{
		Users: dto.UserStats{
			Total:    totalUsers,
			Students: students,
			Admins:   admins,
			Active:   active,
		},
		Internships: dto.InternshipStatsResponse{
			Total:   totalInternships,
			Active:  activeN,
			Draft:   draftN,
			Expired: expiredN,
		},
		Applications:       *applicationStatsFromCounts(appCounts),
		RecentApps:         toApplicationResponses(recent),
		TopInternships:     topStats,
		CampusDistribution: campusStats,
	}, nil
}

func (s *adminService) ApplicationStats(ctx context.Context) (*dto.ApplicationStatsResponse, error) {
	counts, err := s.repo.Application.CountByStatus(ctx, "")
	if err != nil {
		s.logger.Error("统计申请失败", zap.Error(err))
		return nil, err
	}
	return applicationStatsFromCounts(counts), nil
}
