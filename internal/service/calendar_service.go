package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"intern-hub/backend/internal/authz"
	"intern-hub/backend/internal/repository"
)

// ── 日历模块业务错误 ──

var ErrNoInterviewDate = errors.New("该申请未安排面试")

// 面试默认时长，评审时仅记录开始时间
const interviewDuration = time.Hour

// CalendarService 日历业务接口
// 学生可将面试安排导出为标准 iCalendar (RFC 5545) 文件，导入个人日历
type CalendarService interface {
	// InterviewICS 生成面试日历文件
	InterviewICS(ctx context.Context, actor authz.Actor, applicationID string) (*bytes.Buffer, string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) InterviewICS(ctx context.Context, actor authz.Actor, applicationID string) (*bytes.Buffer, string, error) {
	app, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, "", err
	}
	if !authz.Can(actor, authz.ActionApplicationView, authz.Resource{OwnerID: app.UserID}) {
		return nil, "", ErrForbidden
	}
	if app.InterviewDate == nil {
		return nil, "", ErrNoInterviewDate
	}

	title := "实习面试"
	location := ""
	if app.Internship != nil {
		title = fmt.Sprintf("实习面试：%s", app.Internship.Title)
		location = app.Internship.Location
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//intern-hub//EN")

	event := cal.AddEvent(fmt.Sprintf("interview-%s@intern-hub", app.ApplicationID))
	event.SetCreatedTime(time.Now())
	event.SetDtStampTime(time.Now())
	event.SetStartAt(*app.InterviewDate)
	event.SetEndAt(app.InterviewDate.Add(interviewDuration))
	event.SetSummary(title)
	if location != "" {
		event.SetLocation(location)
	}
	if app.NextSteps != "" {
		event.SetDescription(app.NextSteps)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("interview_%s.ics", app.InterviewDate.Format("20060102"))
	return buf, filename, nil
}
