package repository

import (
	"context"

	"gorm.io/gorm"

	"intern-hub/backend/internal/model"
)

// ── 参考数据（校区 / 院系 / 标签）数据访问 ──

// CampusRepository 校区数据访问接口
type CampusRepository interface {
	Create(ctx context.Context, campus *model.Campus) error
	GetByID(ctx context.Context, id string) (*model.Campus, error)
	List(ctx context.Context) ([]model.Campus, error)
}

// DepartmentRepository 院系数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context, campusID string) ([]model.Department, error)
}

// TagRepository 标签数据访问接口
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByIDs(ctx context.Context, ids []string) ([]model.Tag, error)
	List(ctx context.Context, category string) ([]model.Tag, error)
}

// ── Campus 实现 ──

type campusRepo struct {
	db *gorm.DB
}

func NewCampusRepo(db *gorm.DB) CampusRepository {
	return &campusRepo{db: db}
}

func (r *campusRepo) Create(ctx context.Context, campus *model.Campus) error {
	return r.db.WithContext(ctx).Create(campus).Error
}

func (r *campusRepo) GetByID(ctx context.Context, id string) (*model.Campus, error) {
	var campus model.Campus
	err := r.db.WithContext(ctx).
		Where("campus_id = ?", id).
		First(&campus).Error
	if err != nil {
		return nil, err
	}
	return &campus, nil
}

func (r *campusRepo) List(ctx context.Context) ([]model.Campus, error) {
	var campuses []model.Campus
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&campuses).Error
	return campuses, err
}

// ── Department 实现 ──

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Preload("Campus").
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context, campusID string) ([]model.Department, error) {
	var depts []model.Department
	db := r.db.WithContext(ctx).Preload("Campus")
	if campusID != "" {
		db = db.Where("campus_id = ?", campusID)
	}
	err := db.Order("name ASC").Find(&depts).Error
	return depts, err
}

// ── Tag 实现 ──

type tagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).
		Where("tag_id IN ?", ids).
		Find(&tags).Error
	return tags, err
}

func (r *tagRepo) List(ctx context.Context, category string) ([]model.Tag, error) {
	var tags []model.Tag
	db := r.db.WithContext(ctx)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	err := db.Order("category ASC, name ASC").Find(&tags).Error
	return tags, err
}
