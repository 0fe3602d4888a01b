package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"intern-hub/backend/internal/dto"
	"intern-hub/backend/internal/model"
)

func newInternshipService(env *testEnv) InternshipService {
	return NewInternshipService(env.repo, zap.NewNop())
}

func (e *testEnv) seedCampusAndDept() {
	e.campuses.campuses["campus-1"] = &model.Campus{CampusID: "campus-1", Name: "主校区", Code: "MAIN"}
	e.depts.depts["dept-1"] = &model.Department{DepartmentID: "dept-1", Name: "计算机学院", CampusID: "campus-1"}
}

func TestCreateInternship_DefaultsToDraft(t *testing.T) {
	env := newTestEnv()
	env.seedCampusAndDept()
	svc := newInternshipService(env)

	resp, err := svc.Create(context.Background(), "admin-1", &dto.CreateInternshipRequest{
		Title:        "后端开发实习生",
		Description:  "参与服务端开发",
		CampusID:     "campus-1",
		DepartmentID: "dept-1",
	})
	if err != nil {
		t.Fatalf("创建岗位失败: %v", err)
	}
	if resp.Status != string(model.InternshipDraft) {
		t.Errorf("期望默认状态 draft，实际 %s", resp.Status)
	}
}

func TestCreateInternship_InvalidReference(t *testing.T) {
	env := newTestEnv()
	env.seedCampusAndDept()
	svc := newInternshipService(env)

	_, err := svc.Create(context.Background(), "admin-1", &dto.CreateInternshipRequest{
		Title:        "岗位",
		Description:  "描述",
		CampusID:     "missing",
		DepartmentID: "dept-1",
	})
	if !errors.Is(err, ErrCampusNotFound) {
		t.Errorf("期望 ErrCampusNotFound，实际 %v", err)
	}

	_, err = svc.Create(context.Background(), "admin-1", &dto.CreateInternshipRequest{
		Title:        "岗位",
		Description:  "描述",
		CampusID:     "campus-1",
		DepartmentID: "missing",
	})
	if !errors.Is(err, ErrDeptNotFound) {
		t.Errorf("期望 ErrDeptNotFound，实际 %v", err)
	}
}

func TestGetInternship_StudentCannotSeeNonActive(t *testing.T) {
	env := newTestEnv()
	env.seedInternship("draft-1", model.InternshipDraft)
	env.seedInternship("active-1", model.InternshipActive)
	svc := newInternshipService(env)

	// 学生视角：非 active 岗位等同不存在
	if _, err := svc.Get(context.Background(), "draft-1", false); !errors.Is(err, ErrInternshipNotFound) {
		t.Errorf("期望 ErrInternshipNotFound，实际 %v", err)
	}
	if _, err := svc.Get(context.Background(), "active-1", false); err != nil {
		t.Errorf("active 岗位应对学生可见: %v", err)
	}
	// 管理员视角：draft 可见
	if _, err := svc.Get(context.Background(), "draft-1", true); err != nil {
		t.Errorf("draft 岗位应对管理员可见: %v", err)
	}
}

func TestListInternships_CatalogGating(t *testing.T) {
	env := newTestEnv()
	env.seedInternship("active-1", model.InternshipActive)
	env.seedInternship("draft-1", model.InternshipDraft)
	env.seedInternship("expired-1", model.InternshipExpired)
	svc := newInternshipService(env)

	// 学生目录（include_all 被忽略）
	list, total, err := svc.List(context.Background(), &dto.InternshipListRequest{IncludeAll: true}, false)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || list[0].Status != string(model.InternshipActive) {
		t.Errorf("学生目录应只含 active，实际 total=%d", total)
	}

	// 管理员 include_all
	_, total, err = svc.List(context.Background(), &dto.InternshipListRequest{IncludeAll: true}, true)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 3 {
		t.Errorf("管理员 include_all 应返回全部 3 个，实际 %d", total)
	}

	// 管理员不带 include_all 时与目录语义一致
	_, total, err = svc.List(context.Background(), &dto.InternshipListRequest{}, true)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 {
		t.Errorf("缺省应只返回 active，实际 %d", total)
	}
}

func TestUpdateInternship_TagWholesaleReplace(t *testing.T) {
	env := newTestEnv()
	env.seedCampusAndDept()
	env.tags.tags["tag-1"] = &model.Tag{TagID: "tag-1", Name: "Go", Category: "skill"}
	env.tags.tags["tag-2"] = &model.Tag{TagID: "tag-2", Name: "Remote", Category: "mode"}
	env.tags.tags["tag-3"] = &model.Tag{TagID: "tag-3", Name: "Paid", Category: "benefit"}
	internship := env.seedInternship("internship-1", model.InternshipActive)
	internship.Tags = []model.Tag{*env.tags.tags["tag-1"], *env.tags.tags["tag-2"]}
	svc := newInternshipService(env)

	// 非 nil 的 tag_ids 整体替换旧集合
	newTags := []string{"tag-3"}
	resp, err := svc.Update(context.Background(), "internship-1", &dto.UpdateInternshipRequest{TagIDs: &newTags})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if len(resp.Tags) != 1 || resp.Tags[0].Name != "Paid" {
		t.Errorf("期望标签被整体替换为 [Paid]，实际 %+v", resp.Tags)
	}

	// 空数组清空标签
	empty := []string{}
	resp, err = svc.Update(context.Background(), "internship-1", &dto.UpdateInternshipRequest{TagIDs: &empty})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if len(resp.Tags) != 0 {
		t.Errorf("期望标签被清空，实际 %+v", resp.Tags)
	}

	// nil（字段缺省）不改动标签
	title := "改个标题"
	internship.Tags = []model.Tag{*env.tags.tags["tag-1"]}
	resp, err = svc.Update(context.Background(), "internship-1", &dto.UpdateInternshipRequest{Title: &title})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if len(resp.Tags) != 1 {
		t.Errorf("缺省 tag_ids 不应改动标签，实际 %+v", resp.Tags)
	}
}

func TestUpdateInternship_UnknownTagRejected(t *testing.T) {
	env := newTestEnv()
	env.seedCampusAndDept()
	env.seedInternship("internship-1", model.InternshipActive)
	svc := newInternshipService(env)

	bad := []string{"tag-missing"}
	_, err := svc.Update(context.Background(), "internship-1", &dto.UpdateInternshipRequest{TagIDs: &bad})
	if !errors.Is(err, ErrTagNotFound) {
		t.Errorf("期望 ErrTagNotFound，实际 %v", err)
	}
}

func TestUpdateInternship_UnknownStatusRejected(t *testing.T) {
	env := newTestEnv()
	env.seedInternship("internship-1", model.InternshipActive)
	svc := newInternshipService(env)

	bad := "archived"
	_, err := svc.Update(context.Background(), "internship-1", &dto.UpdateInternshipRequest{Status: &bad})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("期望 ErrInvalidStatus，实际 %v", err)
	}
}

func TestDeleteInternship_BlockedByApplications(t *testing.T) {
	env := newTestEnv()
	env.seedStudent("stu-1", "alice@university.edu")
	env.seedInternship("internship-1", model.InternshipActive)
	env.seedApplication("app-1", "stu-1", "internship-1", model.ApplicationPending)
	svc := newInternshipService(env)

	err := svc.Delete(context.Background(), "internship-1")
	if !errors.Is(err, ErrInternshipHasApplications) {
		t.Errorf("期望 ErrInternshipHasApplications，实际 %v", err)
	}

	// 申请撤回后可删除
	delete(env.apps.apps, "app-1")
	if err := svc.Delete(context.Background(), "internship-1"); err != nil {
		t.Errorf("删除失败: %v", err)
	}
}
