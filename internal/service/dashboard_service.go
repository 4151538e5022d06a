package service

import (
	"time"

	"learnhub_backend/internal/model"
)

// DashboardOverview 仪表盘一次性拉取的聚合视图
type DashboardOverview struct {
	Stats          *DashboardStats       `json:"stats"`
	WeeklyActivity []WeeklyActivityEntry `json:"weeklyActivity"`
	SkillProgress  []SkillProgressEntry  `json:"skillProgress"`
	Categories     []CategoryShare       `json:"categories"`
	Streak         *model.LearningStreak `json:"streak"`
}

// DashboardService 组合活动、进度与连续天数服务，供仪表盘单次请求使用
type DashboardService struct {
	Activity *ActivityService
	Progress *ProgressService
	Streak   *StreakService
}

func NewDashboardService(activity *ActivityService, progress *ProgressService, streak *StreakService) *DashboardService {
	return &DashboardService{
		Activity: activity,
		Progress: progress,
		Streak:   streak,
	}
}

// Overview 聚合仪表盘所需的全部数据
func (s *DashboardService) Overview(userID uint, now time.Time) (*DashboardOverview, error) {
	stats, err := s.Activity.GetStats(userID, now)
	if err != nil {
		return nil, err
	}

	weekly, err := s.Activity.GetWeeklyActivity(userID, now)
	if err != nil {
		return nil, err
	}

	skills, err := s.Progress.UserSkillProgress(userID)
	if err != nil {
		return nil, err
	}

	categories, err := s.Progress.UserCategoryDistribution(userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.Streak.GetStreak(userID)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		Stats:          stats,
		WeeklyActivity: weekly,
		SkillProgress:  skills,
		Categories:     categories,
		Streak:         streak,
	}, nil
}
