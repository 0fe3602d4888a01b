//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"intern-hub/backend/internal/model"
	"intern-hub/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=intern_hub password=intern_hub_password dbname=intern_hub_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Campus{},
		&model.Department{},
		&model.Tag{},
		&model.User{},
		&model.Internship{},
		&model.Application{},
		&model.Attachment{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	// 清理测试数据
	testDB.Exec("TRUNCATE attachments, applications, internship_tags, internships, tags, departments, campuses, users CASCADE")

	os.Exit(code)
}

func cleanTables(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("TRUNCATE attachments, applications, internship_tags, internships, tags, departments, campuses, users CASCADE").Error; err != nil {
		t.Fatalf("清理测试表失败: %v", err)
	}
}

func seedStudent(t *testing.T, email, studentID string) *model.User {
	t.Helper()
	sid := studentID
	user := &model.User{
		Email:        email,
		FirstName:    "测试",
		LastName:     "学生",
		StudentID:    &sid,
		PasswordHash: "x",
		Role:         model.RoleStudent,
		IsActive:     true,
	}
	if err := testDB.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

func seedInternship(t *testing.T, title string, status model.InternshipStatus, creatorID string) *model.Internship {
	t.Helper()
	campus := &model.Campus{Name: "主校区", Code: "MAIN-" + title}
	if err := testDB.Create(campus).Error; err != nil {
		t.Fatalf("创建测试校区失败: %v", err)
	}
	dept := &model.Department{Name: "计算机学院", CampusID: campus.CampusID}
	if err := testDB.Create(dept).Error; err != nil {
		t.Fatalf("创建测试院系失败: %v", err)
	}
	internship := &model.Internship{
		Title:        title,
		Description:  "描述",
		Status:       status,
		CampusID:     campus.CampusID,
		DepartmentID: dept.DepartmentID,
		CreatedByID:  creatorID,
	}
	if err := testDB.Create(internship).Error; err != nil {
		t.Fatalf("创建测试岗位失败: %v", err)
	}
	return internship
}

// ═══════════════════════════════════════════════════════════
// Application Repository
// ═══════════════════════════════════════════════════════════

func TestApplicationRepo_DuplicateKey(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := repository.NewApplicationRepo(testDB)

	student := seedStudent(t, "dup@university.edu", "S1001")
	internship := seedInternship(t, "重复申请测试岗", model.InternshipActive, student.UserID)

	first := &model.Application{UserID: student.UserID, InternshipID: internship.InternshipID}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("首次创建申请失败: %v", err)
	}

	second := &model.Application{UserID: student.UserID, InternshipID: internship.InternshipID}
	err := repo.Create(ctx, second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("期望 gorm.ErrDuplicatedKey，实际 %v", err)
	}
}

func TestApplicationRepo_DeleteCascadesAttachments(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	appRepo := repository.NewApplicationRepo(testDB)
	attRepo := repository.NewAttachmentRepo(testDB)

	student := seedStudent(t, "cascade@university.edu", "S1002")
	internship := seedInternship(t, "级联删除测试岗", model.InternshipActive, student.UserID)

	app := &model.Application{UserID: student.UserID, InternshipID: internship.InternshipID}
	if err := appRepo.Create(ctx, app); err != nil {
		t.Fatalf("创建申请失败: %v", err)
	}

	att := &model.Attachment{
		ApplicationID: app.ApplicationID,
		UploadedByID:  student.UserID,
		Filename:      "resume.pdf",
		BlobKey:       "blob-1",
		FileType:      model.AttachmentResume,
		ContentType:   "application/pdf",
		FileSize:      1024,
	}
	if err := attRepo.Create(ctx, att); err != nil {
		t.Fatalf("创建附件失败: %v", err)
	}

	if err := appRepo.Delete(ctx, app.ApplicationID); err != nil {
		t.Fatalf("删除申请失败: %v", err)
	}

	remaining, err := attRepo.ListByApplication(ctx, app.ApplicationID)
	if err != nil {
		t.Fatalf("查询附件失败: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("期望附件登记行被级联删除，实际剩余 %d 条", len(remaining))
	}
}

func TestApplicationRepo_ListScopedByUser(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := repository.NewApplicationRepo(testDB)

	alice := seedStudent(t, "alice@university.edu", "S2001")
	bob := seedStudent(t, "bob@university.edu", "S2002")
	internship := seedInternship(t, "范围过滤测试岗", model.InternshipActive, alice.UserID)

	for _, u := range []*model.User{alice, bob} {
		app := &model.Application{UserID: u.UserID, InternshipID: internship.InternshipID}
		if err := repo.Create(ctx, app); err != nil {
			t.Fatalf("创建申请失败: %v", err)
		}
	}

	apps, total, err := repo.List(ctx, repository.ApplicationListFilter{
		UserID: alice.UserID,
		Offset: 0,
		Limit:  20,
	})
	if err != nil {
		t.Fatalf("查询申请列表失败: %v", err)
	}
	if total != 1 || len(apps) != 1 {
		t.Fatalf("期望只返回 1 条申请，实际 total=%d len=%d", total, len(apps))
	}
	if apps[0].UserID != alice.UserID {
		t.Errorf("期望申请属于 alice，实际 user_id=%s", apps[0].UserID)
	}
}

// ═══════════════════════════════════════════════════════════
// Internship Repository
// ═══════════════════════════════════════════════════════════

func TestInternshipRepo_ListFiltersByStatus(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := repository.NewInternshipRepo(testDB)

	student := seedStudent(t, "filter@university.edu", "S3001")
	seedInternship(t, "活跃岗位", model.InternshipActive, student.UserID)
	seedInternship(t, "草稿岗位", model.InternshipDraft, student.UserID)
	seedInternship(t, "过期岗位", model.InternshipExpired, student.UserID)

	internships, total, err := repo.List(ctx, repository.InternshipListFilter{
		Statuses: []model.InternshipStatus{model.InternshipActive},
		Offset:   0,
		Limit:    20,
	})
	if err != nil {
		t.Fatalf("查询岗位列表失败: %v", err)
	}
	if total != 1 || len(internships) != 1 {
		t.Fatalf("期望只返回 1 个 active 岗位，实际 total=%d len=%d", total, len(internships))
	}
	if internships[0].Status != model.InternshipActive {
		t.Errorf("期望状态 active，实际 %s", internships[0].Status)
	}
}

func TestInternshipRepo_ReplaceTags(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := repository.NewInternshipRepo(testDB)

	student := seedStudent(t, "tags@university.edu", "S3002")
	internship := seedInternship(t, "标签替换测试岗", model.InternshipActive, student.UserID)

	tagA := &model.Tag{Name: "Go", Category: "skill"}
	tagB := &model.Tag{Name: "Remote", Category: "mode"}
	tagC := &model.Tag{Name: "Paid", Category: "benefit"}
	for _, tag := range []*model.Tag{tagA, tagB, tagC} {
		if err := testDB.Create(tag).Error; err != nil {
			t.Fatalf("创建标签失败: %v", err)
		}
	}

	if err := repo.ReplaceTags(ctx, internship, []model.Tag{*tagA, *tagB}); err != nil {
		t.Fatalf("首次设置标签失败: %v", err)
	}
	// 整体替换：旧集合完全被新集合取代
	if err := repo.ReplaceTags(ctx, internship, []model.Tag{*tagC}); err != nil {
		t.Fatalf("替换标签失败: %v", err)
	}

	got, err := repo.GetByID(ctx, internship.InternshipID)
	if err != nil {
		t.Fatalf("查询岗位失败: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Name != "Paid" {
		t.Errorf("期望标签集合被整体替换为 [Paid]，实际 %v", got.Tags)
	}
}
