package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"intern-hub/backend/internal/model"
)

func TestInterviewICS_NoInterviewDate(t *testing.T) {
	env := newTestEnv()
	env.seedStudent("stu-1", "alice@university.edu")
	env.seedInternship("internship-1", model.InternshipActive)
	env.seedApplication("app-1", "stu-1", "internship-1", model.ApplicationReviewed)
	svc := NewCalendarService(env.repo, zap.NewNop())

	_, _, err := svc.InterviewICS(context.Background(), studentActor("stu-1"), "app-1")
	if !errors.Is(err, ErrNoInterviewDate) {
		t.Errorf("期望 ErrNoInterviewDate，实际 %v", err)
	}
}

func TestInterviewICS_GeneratesCalendar(t *testing.T) {
	env := newTestEnv()
	env.seedStudent("stu-1", "alice@university.edu")
	env.seedInternship("internship-1", model.InternshipActive)
	app := env.seedApplication("app-1", "stu-1", "internship-1", model.ApplicationReviewed)
	interviewAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	app.InterviewDate = &interviewAt
	app.NextSteps = "请携带学生证"
	svc := NewCalendarService(env.repo, zap.NewNop())

	buf, filename, err := svc.InterviewICS(context.Background(), studentActor("stu-1"), "app-1")
	if err != nil {
		t.Fatalf("生成日历失败: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("期望 .ics 文件名，实际 %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("期望标准 iCalendar 结构")
	}
	if !strings.Contains(content, "测试岗位 internship-1") {
		t.Errorf("期望事件标题包含岗位名，实际内容:\n%s", content)
	}
	if !strings.Contains(content, "20260915T100000Z") {
		t.Error("期望事件开始时间为面试时间")
	}
}

func TestInterviewICS_OtherStudentForbidden(t *testing.T) {
	env := newTestEnv()
	env.seedStudent("stu-1", "alice@university.edu")
	env.seedStudent("stu-2", "bob@university.edu")
	env.seedInternship("internship-1", model.InternshipActive)
	app := env.seedApplication("app-1", "stu-1", "internship-1", model.ApplicationReviewed)
	interviewAt := time.Now().Add(48 * time.Hour)
	app.InterviewDate = &interviewAt
	svc := NewCalendarService(env.repo, zap.NewNop())

	_, _, err := svc.InterviewICS(context.Background(), studentActor("stu-2"), "app-1")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("期望 ErrForbidden，实际 %v", err)
	}
}
