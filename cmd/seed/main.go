package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"intern-hub/backend/config"
	"intern-hub/backend/internal/model"
	"intern-hub/backend/pkg/database"
	applogger "intern-hub/backend/pkg/logger"
)

// 初始数据灌入：校区、院系、标签、管理员与测试学生账号、示例岗位。
// 幂等：按唯一键查重，已存在则跳过。

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	if err := seed(db, logger); err != nil {
		logger.Fatal("灌入初始数据失败", zap.Error(err))
	}
	logger.Info("初始数据灌入完成")
}

func seed(db *gorm.DB, logger *zap.Logger) error {
	// ── 校区 ──
	campuses := []model.Campus{
		{Name: "工程学部", Code: "ENG", Address: "Mira St. 19", Description: "信息技术与无线电电子学部"},
		{Name: "新城校区", Code: "NOVO", Address: "Novokoltcovsky Trakt 1", Description: "实验室集中的现代化校区"},
		{Name: "主教学楼", Code: "MAIN", Address: "Lenina St. 51", Description: "主教学楼"},
	}
	for i := range campuses {
		if err := firstOrCreate(db, &campuses[i], "code = ?", campuses[i].Code); err != nil {
			return err
		}
	}
	byCode := map[string]string{}
	for _, c := range campuses {
		byCode[c.Code] = c.CampusID
	}

	// ── 院系 ──
	departments := []model.Department{
		{Name: "信息系统系", CampusID: byCode["ENG"]},
		{Name: "软件工程系", CampusID: byCode["ENG"]},
		{Name: "信息技术管理处", CampusID: byCode["MAIN"]},
		{Name: "材料科学系", CampusID: byCode["NOVO"]},
		{Name: "物理系", CampusID: byCode["NOVO"]},
		{Name: "公共关系处", CampusID: byCode["MAIN"]},
		{Name: "人事处", CampusID: byCode["MAIN"]},
	}
	for i := range departments {
		if err := firstOrCreate(db, &departments[i], "name = ? AND campus_id = ?", departments[i].Name, departments[i].CampusID); err != nil {
			return err
		}
	}

	// ── 标签 ──
	tags := []model.Tag{
		{Name: "Python", Category: "programming"},
		{Name: "JavaScript", Category: "programming"},
		{Name: "React", Category: "programming"},
		{Name: "Node.js", Category: "programming"},
		{Name: "Machine Learning", Category: "technology"},
		{Name: "Data Science", Category: "technology"},
		{Name: "Web Development", Category: "technology"},
		{Name: "Mobile Development", Category: "technology"},
		{Name: "UI/UX Design", Category: "design"},
		{Name: "Marketing", Category: "business"},
		{Name: "SMM", Category: "business"},
		{Name: "Project Management", Category: "business"},
		{Name: "Research", Category: "academic"},
		{Name: "Laboratory Work", Category: "academic"},
		{Name: "Technical Writing", Category: "communication"},
	}
	for i := range tags {
		if err := firstOrCreate(db, &tags[i], "name = ?", tags[i].Name); err != nil {
			return err
		}
	}

	// ── 管理员 ──
	admin := model.User{
		Email:     "admin@university.edu",
		FirstName: "Anna",
		LastName:  "Admin",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	created, err := seedUser(db, &admin, "admin123")
	if err != nil {
		return err
	}
	if created {
		logger.Info("已创建管理员账号", zap.String("email", admin.Email))
	}

	// ── 测试学生 ──
	studentID := "2021001234"
	gpa := 4.5
	student := model.User{
		Email:     "student@university.edu",
		FirstName: "Ivan",
		LastName:  "Petrov",
		StudentID: &studentID,
		Course:    "本科三年级",
		GPA:       &gpa,
		Phone:     "+7 (999) 123-45-67",
		Role:      model.RoleStudent,
		IsActive:  true,
	}
	created, err = seedUser(db, &student, "student123")
	if err != nil {
		return err
	}
	if created {
		logger.Info("已创建测试学生账号", zap.String("email", student.Email))
	}

	// ── 示例岗位 ──
	var deptIS, deptIT model.Department
	if err := db.Where("name = ?", "信息系统系").First(&deptIS).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "信息技术管理处").First(&deptIT).Error; err != nil {
		return err
	}

	deadline1 := time.Now().AddDate(0, 0, 30)
	deadline2 := time.Now().AddDate(0, 0, 20)
	internships := []model.Internship{
		{
			Title:            "AI 实验室研发实习生",
			Description:      "参与机器学习算法研发与数据分析，加入在研课题组。",
			Requirements:     "Python、机器学习基础，本科三至四年级",
			Responsibilities: "算法开发、数据分析、参与课题研究",
			Benefits:         "弹性工作时间、AI 项目经验、导师指导",
			Location:         "工程学部 405 室",
			Duration:         "3 个月",
			Salary:           "25000",
			Deadline:         &deadline1,
			ContactName:      "Ivanov 教授",
			ContactEmail:     "ivanov@university.edu",
			ContactPhone:     "+7 (343) 123-45-67",
			Status:           model.InternshipActive,
			CampusID:         byCode["ENG"],
			DepartmentID:     deptIS.DepartmentID,
			CreatedByID:      admin.UserID,
		},
		{
			Title:            "IT 部门实习生",
			Description:      "维护校内业务系统，参与 Web 应用开发。",
			Requirements:     "JavaScript、React、Node.js，有 Web 开发经验",
			Responsibilities: "系统维护、Web 应用开发、测试",
			Benefits:         "接触现代技术栈、专业团队",
			Location:         "主教学楼 A 座 301 室",
			Duration:         "4 个月",
			Salary:           "20000",
			Deadline:         &deadline2,
			ContactName:      "Petrova A.V.",
			ContactEmail:     "petrova@university.edu",
			ContactPhone:     "+7 (343) 234-56-78",
			Status:           model.InternshipActive,
			CampusID:         byCode["MAIN"],
			DepartmentID:     deptIT.DepartmentID,
			CreatedByID:      admin.UserID,
		},
	}
	for i := range internships {
		if err := firstOrCreate(db, &internships[i], "title = ?", internships[i].Title); err != nil {
			return err
		}
	}

	return nil
}

// firstOrCreate 按条件查重，不存在时创建；命中时把已有行回填到 dst
func firstOrCreate(db *gorm.DB, dst interface{}, query string, args ...interface{}) error {
	err := db.Where(query, args...).First(dst).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(dst).Error
}

// seedUser 创建用户并哈希密码；已存在时回填已有行
func seedUser(db *gorm.DB, user *model.User, password string) (bool, error) {
	err := db.Where("email = ?", user.Email).First(user).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	user.PasswordHash = string(hash)
	return true, db.Create(user).Error
}
