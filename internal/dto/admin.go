package dto

// ── 管理后台 DTO ──

// DashboardStatsResponse 管理员仪表盘统计
type DashboardStatsResponse struct {
	Users              UserStats                `json:"users"`
	Internships        InternshipStatsResponse  `json:"internships"`
	Applications       ApplicationStatsResponse `json:"applications"`
	RecentApps         []ApplicationResponse    `json:"recent_applications,omitempty"`
	TopInternships     []TopInternshipStat      `json:"top_internships,omitempty"`
	CampusDistribution []CampusInternshipStat   `json:"campus_distribution,omitempty"`
}

// TopInternshipStat 按申请量排行的岗位
type TopInternshipStat struct {
	InternshipID string `json:"internship_id"`
	Title        string `json:"title"`
	Applications int64  `json:"applications"`
}

// CampusInternshipStat 单个校区的岗位数量
type CampusInternshipStat struct {
	CampusID    string `json:"campus_id"`
	Name        string `json:"name"`
	Internships int64  `json:"internships"`
}

// UserStats 用户数量统计
type UserStats struct {
	Total    int64 `json:"total"`
	Students int64 `json:"students"`
	Admins   int64 `json:"admins"`
	Active   int64 `json:"active"`
}
