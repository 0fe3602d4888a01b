package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"intern-hub/backend/internal/dto"
)

func newUserService(env *testEnv) UserService {
	return NewUserService(env.repo, zap.NewNop())
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	env := newTestEnv()
	user := env.seedStudent("stu-1", "alice@university.edu")
	user.Course = "计算机科学"
	user.Phone = "13800000000"
	svc := newUserService(env)

	newPhone := "13900000000"
	resp, err := svc.UpdateProfile(context.Background(), "stu-1", &dto.UpdateProfileRequest{Phone: &newPhone})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if resp.Phone != newPhone {
		t.Errorf("期望电话更新为 %s，实际 %s", newPhone, resp.Phone)
	}
	if resp.Course != "计算机科学" {
		t.Errorf("缺省字段应保持不变，实际 %q", resp.Course)
	}
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	env := newTestEnv()
	svc := newUserService(env)

	name := "新名字"
	_, err := svc.UpdateProfile(context.Background(), "missing", &dto.UpdateProfileRequest{FirstName: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际 %v", err)
	}
}

func TestList_RoleFilter(t *testing.T) {
	env := newTestEnv()
	env.seedStudent("stu-1", "alice@university.edu")
	env.seedStudent("stu-2", "bob@university.edu")
	env.seedAdmin("admin-1", "admin@university.edu")
	svc := newUserService(env)

	users, total, err := svc.List(context.Background(), &dto.UserListRequest{Role: "student"})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Errorf("期望 2 个学生，实际 total=%d len=%d", total, len(users))
	}
}

func TestToggleActive_AdminOnly(t *testing.T) {
	env := newTestEnv()
	env.seedStudent("stu-1", "alice@university.edu")
	env.seedStudent("stu-2", "bob@university.edu")
	env.seedAdmin("admin-1", "admin@university.edu")
	svc := newUserService(env)

	// 学生不能切换任何人的激活状态
	if _, err := svc.ToggleActive(context.Background(), studentActor("stu-2"), "stu-1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("期望 ErrForbidden，实际 %v", err)
	}

	// 管理员停用学生
	resp, err := svc.ToggleActive(context.Background(), adminActor("admin-1"), "stu-1")
	if err != nil {
		t.Fatalf("切换失败: %v", err)
	}
	if resp.IsActive {
		t.Error("期望切换后为停用")
	}

	// 再切换一次恢复激活
	resp, err = svc.ToggleActive(context.Background(), adminActor("admin-1"), "stu-1")
	if err != nil {
		t.Fatalf("切换失败: %v", err)
	}
	if !resp.IsActive {
		t.Error("期望切换后恢复激活")
	}
}

func TestToggleActive_SelfRejected(t *testing.T) {
	env := newTestEnv()
	env.seedAdmin("admin-1", "admin@university.edu")
	svc := newUserService(env)

	// 管理员不能停用自己，防止把系统锁死
	_, err := svc.ToggleActive(context.Background(), adminActor("admin-1"), "admin-1")
	if !errors.Is(err, ErrSelfToggle) {
		t.Errorf("期望 ErrSelfToggle，实际 %v", err)
	}
}
