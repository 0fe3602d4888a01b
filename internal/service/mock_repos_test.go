package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"intern-hub/backend/internal/model"
	"intern-hub/backend/internal/repository"
	"intern-hub/backend/pkg/storage"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByStudentID(_ context.Context, studentID string) (*model.User, error) {
	for _, u := range m.users {
		if u.StudentID != nil && *u.StudentID == studentID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserListFilter) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Keyword != "" {
			kw := strings.ToLower(filter.Keyword)
			if !strings.Contains(strings.ToLower(u.FirstName), kw) &&
				!strings.Contains(strings.ToLower(u.LastName), kw) &&
				!strings.Contains(strings.ToLower(u.Email), kw) {
				continue
			}
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) CountByRole(_ context.Context) (total, students, admins, active int64, err error) {
	for _, u := range m.users {
		total++
		if u.Role == model.RoleStudent {
			students++
		}
		if u.Role == model.RoleAdmin {
			admins++
		}
		if u.IsActive {
			active++
		}
	}
	return
}

// ── Mock CampusRepository ──

type mockCampusRepo struct {
	campuses map[string]*model.Campus
	seq      int
}

func newMockCampusRepo() *mockCampusRepo {
	return &mockCampusRepo{campuses: make(map[string]*model.Campus)}
}

func (m *mockCampusRepo) Create(_ context.Context, campus *model.Campus) error {
	for _, c := range m.campuses {
		if c.Code == campus.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if campus.CampusID == "" {
		m.seq++
		campus.CampusID = fmt.Sprintf("campus-%d", m.seq)
	}
	m.campuses[campus.CampusID] = campus
	return nil
}

func (m *mockCampusRepo) GetByID(_ context.Context, id string) (*model.Campus, error) {
	if c, ok := m.campuses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCampusRepo) List(_ context.Context) ([]model.Campus, error) {
	var result []model.Campus
	for _, c := range m.campuses {
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	depts map[string]*model.Department
	seq   int
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{depts: make(map[string]*model.Department)}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		m.seq++
		dept.DepartmentID = fmt.Sprintf("dept-%d", m.seq)
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context, campusID string) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		if campusID != "" && d.CampusID != campusID {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

// ── Mock TagRepository ──

type mockTagRepo struct {
	tags map[string]*model.Tag
	seq  int
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{tags: make(map[string]*model.Tag)}
}

func (m *mockTagRepo) Create(_ context.Context, tag *model.Tag) error {
	for _, t := range m.tags {
		if t.Name == tag.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if tag.TagID == "" {
		m.seq++
		tag.TagID = fmt.Sprintf("tag-%d", m.seq)
	}
	m.tags[tag.TagID] = tag
	return nil
}

func (m *mockTagRepo) GetByIDs(_ context.Context, ids []string) ([]model.Tag, error) {
	var result []model.Tag
	for _, id := range ids {
		if t, ok := m.tags[id]; ok {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTagRepo) List(_ context.Context, category string) ([]model.Tag, error) {
	var result []model.Tag
	for _, t := range m.tags {
		if category != "" && t.Category != category {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

// ── Mock InternshipRepository ──

type mockInternshipRepo struct {
	internships map[string]*model.Internship
	seq         int
	apps        *mockApplicationRepo // CountApplications 用
}

func newMockInternshipRepo() *mockInternshipRepo {
	return &mockInternshipRepo{internships: make(map[string]*model.Internship)}
}

func (m *mockInternshipRepo) Create(_ context.Context, internship *model.Internship) error {
	if internship.InternshipID == "" {
		m.seq++
		internship.InternshipID = fmt.Sprintf("internship-%d", m.seq)
	}
	internship.CreatedAt = time.Now()
	internship.UpdatedAt = time.Now()
	m.internships[internship.InternshipID] = internship
	return nil
}

func (m *mockInternshipRepo) GetByID(_ context.Context, id string) (*model.Internship, error) {
	if in, ok := m.internships[id]; ok {
		return in, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInternshipRepo) Update(_ context.Context, internship *model.Internship) error {
	if _, ok := m.internships[internship.InternshipID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.internships[internship.InternshipID] = internship
	return nil
}

func (m *mockInternshipRepo) Delete(_ context.Context, id string) error {
	delete(m.internships, id)
	return nil
}

func (m *mockInternshipRepo) List(_ context.Context, filter repository.InternshipListFilter) ([]model.Internship, int64, error) {
	var result []model.Internship
	for _, in := range m.internships {
		if len(filter.Statuses) > 0 {
			matched := false
			for _, st := range filter.Statuses {
				if in.Status == st {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if filter.CampusID != "" && in.CampusID != filter.CampusID {
			continue
		}
		if filter.DepartmentID != "" && in.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Search != "" {
			kw := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(in.Title), kw) &&
				!strings.Contains(strings.ToLower(in.Description), kw) &&
				!strings.Contains(strings.ToLower(in.Requirements), kw) {
				continue
			}
		}
		result = append(result, *in)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].InternshipID < result[j].InternshipID })
	return result, int64(len(result)), nil
}

func (m *mockInternshipRepo) ReplaceTags(_ context.Context, internship *model.Internship, tags []model.Tag) error {
	stored, ok := m.internships[internship.InternshipID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Tags = tags
	return nil
}

func (m *mockInternshipRepo) CountApplications(_ context.Context, id string) (int64, error) {
	if m.apps == nil {
		return 0, nil
	}
	var count int64
	for _, app := range m.apps.apps {
		if app.InternshipID == id {
			count++
		}
	}
	return count, nil
}

func (m *mockInternshipRepo) CountByStatus(_ context.Context) (total, active, draft, expired int64, err error) {
	for _, in := range m.internships {
		total++
		switch in.Status {
		case model.InternshipActive:
			active++
		case model.InternshipDraft:
			draft++
		case model.InternshipExpired:
			expired++
		}
	}
	return
}

func (m *mockInternshipRepo) TopByApplications(ctx context.Context, limit int) ([]repository.InternshipApplicationCount, error) {
	var rows []repository.InternshipApplicationCount
	for id, in := range m.internships {
		n, _ := m.CountApplications(ctx, id)
		if n == 0 {
			continue
		}
		rows = append(rows, repository.InternshipApplicationCount{
			InternshipID: id,
			Title:        in.Title,
			N:            n,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].N > rows[j].N })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (m *mockInternshipRepo) CountByCampus(_ context.Context) ([]repository.CampusInternshipCount, error) {
	counts := make(map[string]int64)
	for _, in := range m.internships {
		counts[in.CampusID]++
	}
	var rows []repository.CampusInternshipCount
	for campusID, n := range counts {
		rows = append(rows, repository.CampusInternshipCount{CampusID: campusID, N: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].N > rows[j].N })
	return rows, nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps        map[string]*model.Application
	seq         int
	users       *mockUserRepo
	internships *mockInternshipRepo
	attachments *mockAttachmentRepo // 行级联删除用
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[string]*model.Application)}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	for _, existing := range m.apps {
		if existing.UserID == app.UserID && existing.InternshipID == app.InternshipID {
			return gorm.ErrDuplicatedKey
		}
	}
	if app.ApplicationID == "" {
		m.seq++
		app.ApplicationID = fmt.Sprintf("app-%d", m.seq)
	}
	if app.Status == "" {
		app.Status = model.ApplicationPending
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()
	m.apps[app.ApplicationID] = app
	return nil
}

// GetByID 模拟 Preload：挂接 User / Internship / Attachments
func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := *app
	if m.users != nil {
		if u, ok := m.users.users[app.UserID]; ok {
			loaded.User = u
		}
	}
	if m.internships != nil {
		if in, ok := m.internships.internships[app.InternshipID]; ok {
			loaded.Internship = in
		}
	}
	if m.attachments != nil {
		loaded.Attachments = nil
		for _, att := range m.attachments.attachments {
			if att.ApplicationID == id {
				loaded.Attachments = append(loaded.Attachments, *att)
			}
		}
	}
	return &loaded, nil
}

func (m *mockApplicationRepo) GetByUserAndInternship(_ context.Context, userID, internshipID string) (*model.Application, error) {
	for _, app := range m.apps {
		if app.UserID == userID && app.InternshipID == internshipID {
			return app, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.Application) error {
	if _, ok := m.apps[app.ApplicationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	app.UpdatedAt = time.Now()
	stored := *app
	stored.User = nil
	stored.Internship = nil
	stored.Attachments = nil
	m.apps[app.ApplicationID] = &stored
	return nil
}

// Delete 模拟外键级联：附件登记行随申请一并删除
func (m *mockApplicationRepo) Delete(_ context.Context, id string) error {
	delete(m.apps, id)
	if m.attachments != nil {
		for attID, att := range m.attachments.attachments {
			if att.ApplicationID == id {
				delete(m.attachments.attachments, attID)
			}
		}
	}
	return nil
}

func (m *mockApplicationRepo) filtered(filter repository.ApplicationListFilter) []model.Application {
	var result []model.Application
	for _, app := range m.apps {
		if filter.UserID != "" && app.UserID != filter.UserID {
			continue
		}
		if filter.InternshipID != "" && app.InternshipID != filter.InternshipID {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		loaded := *app
		if m.users != nil {
			if u, ok := m.users.users[app.UserID]; ok {
				loaded.User = u
			}
		}
		if m.internships != nil {
			if in, ok := m.internships.internships[app.InternshipID]; ok {
				loaded.Internship = in
			}
		}
		result = append(result, loaded)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ApplicationID < result[j].ApplicationID })
	return result
}

func (m *mockApplicationRepo) List(_ context.Context, filter repository.ApplicationListFilter) ([]model.Application, int64, error) {
	result := m.filtered(filter)
	return result, int64(len(result)), nil
}

func (m *mockApplicationRepo) ListAll(_ context.Context, filter repository.ApplicationListFilter) ([]model.Application, error) {
	return m.filtered(filter), nil
}

func (m *mockApplicationRepo) CountByStatus(_ context.Context, userID string) (map[model.ApplicationStatus]int64, error) {
	counts := make(map[model.ApplicationStatus]int64)
	for _, app := range m.apps {
		if userID != "" && app.UserID != userID {
			continue
		}
		counts[app.Status]++
	}
	return counts, nil
}

func (m *mockApplicationRepo) ListRecent(_ context.Context, limit int) ([]model.Application, error) {
	result := m.filtered(repository.ApplicationListFilter{})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock AttachmentRepository ──

type mockAttachmentRepo struct {
	attachments map[string]*model.Attachment
	seq         int
	apps        *mockApplicationRepo // Preload("Application") 用
	createErr   error
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{attachments: make(map[string]*model.Attachment)}
}

func (m *mockAttachmentRepo) Create(_ context.Context, attachment *model.Attachment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if attachment.AttachmentID == "" {
		m.seq++
		attachment.AttachmentID = fmt.Sprintf("att-%d", m.seq)
	}
	attachment.CreatedAt = time.Now()
	m.attachments[attachment.AttachmentID] = attachment
	return nil
}

func (m *mockAttachmentRepo) GetByID(_ context.Context, id string) (*model.Attachment, error) {
	att, ok := m.attachments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := *att
	if m.apps != nil {
		if app, ok := m.apps.apps[att.ApplicationID]; ok {
			loaded.Application = app
		}
	}
	return &loaded, nil
}

func (m *mockAttachmentRepo) ListByApplication(_ context.Context, applicationID string) ([]model.Attachment, error) {
	var result []model.Attachment
	for _, att := range m.attachments {
		if att.ApplicationID == applicationID {
			result = append(result, *att)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AttachmentID < result[j].AttachmentID })
	return result, nil
}

func (m *mockAttachmentRepo) Delete(_ context.Context, id string) error {
	delete(m.attachments, id)
	return nil
}

// ── Mock blob 存储 ──

type mockBlobStore struct {
	blobs      map[string][]byte
	failDelete bool
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{blobs: make(map[string][]byte)}
}

func (m *mockBlobStore) Put(key string, data []byte) error {
	m.blobs[key] = data
	return nil
}

func (m *mockBlobStore) Get(key string) ([]byte, error) {
	if data, ok := m.blobs[key]; ok {
		return data, nil
	}
	return nil, storage.ErrBlobNotFound
}

// Delete 与 LocalStore 一致：key 不存在视为成功
func (m *mockBlobStore) Delete(key string) error {
	if m.failDelete {
		return errors.New("blob 存储不可用")
	}
	delete(m.blobs, key)
	return nil
}

// ── 测试环境装配 ──

type testEnv struct {
	repo        *repository.Repository
	users       *mockUserRepo
	campuses    *mockCampusRepo
	depts       *mockDepartmentRepo
	tags        *mockTagRepo
	internships *mockInternshipRepo
	apps        *mockApplicationRepo
	attachments *mockAttachmentRepo
	blobs       *mockBlobStore
}

func newTestEnv() *testEnv {
	users := newMockUserRepo()
	campuses := newMockCampusRepo()
	depts := newMockDepartmentRepo()
	tags := newMockTagRepo()
	internships := newMockInternshipRepo()
	apps := newMockApplicationRepo()
	attachments := newMockAttachmentRepo()

	apps.users = users
	apps.internships = internships
	apps.attachments = attachments
	attachments.apps = apps
	internships.apps = apps

	return &testEnv{
		repo: &repository.Repository{
			User:        users,
			Campus:      campuses,
			Department:  depts,
			Tag:         tags,
			Internship:  internships,
			Application: apps,
			Attachment:  attachments,
		},
		users:       users,
		campuses:    campuses,
		depts:       depts,
		tags:        tags,
		internships: internships,
		apps:        apps,
		attachments: attachments,
		blobs:       newMockBlobStore(),
	}
}

// ── 种子数据 ──

func (e *testEnv) seedStudent(id, email string) *model.User {
	studentID := "S-" + id
	user := &model.User{
		UserID:       id,
		Email:        email,
		FirstName:    "测试",
		LastName:     "学生",
		StudentID:    &studentID,
		PasswordHash: "x",
		Role:         model.RoleStudent,
		IsActive:     true,
	}
	e.users.users[id] = user
	return user
}

func (e *testEnv) seedAdmin(id, email string) *model.User {
	user := &model.User{
		UserID:       id,
		Email:        email,
		FirstName:    "测试",
		LastName:     "管理员",
		PasswordHash: "x",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	e.users.users[id] = user
	return user
}

func (e *testEnv) seedInternship(id string, status model.InternshipStatus) *model.Internship {
	internship := &model.Internship{
		InternshipID: id,
		Title:        "测试岗位 " + id,
		Description:  "描述",
		Location:     "图书馆",
		Status:       status,
		CampusID:     "campus-1",
		DepartmentID: "dept-1",
		CreatedByID:  "admin-1",
	}
	e.internships.internships[id] = internship
	return internship
}

func (e *testEnv) seedApplication(id, userID, internshipID string, status model.ApplicationStatus) *model.Application {
	app := &model.Application{
		ApplicationID: id,
		UserID:        userID,
		InternshipID:  internshipID,
		Status:        status,
	}
	e.apps.apps[id] = app
	return app
}

func (e *testEnv) seedAttachment(id, applicationID, uploaderID, blobKey string) *model.Attachment {
	att := &model.Attachment{
		AttachmentID:  id,
		ApplicationID: applicationID,
		UploadedByID:  uploaderID,
		Filename:      "resume.pdf",
		BlobKey:       blobKey,
		FileType:      model.AttachmentResume,
		ContentType:   "application/pdf",
		FileSize:      1024,
	}
	e.attachments.attachments[id] = att
	e.blobs.blobs[blobKey] = []byte("%PDF-1.4 测试内容")
	return att
}
