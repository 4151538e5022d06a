package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"math"
	"time"
)

// monthlyTargetHours 月度进度以每月 20 小时学习时长为 100%
const monthlyTargetHours = 20.0

// ActivityDelta 单次记录的活动增量，各字段非负
type ActivityDelta struct {
	StudyTime        int `json:"studyTime" binding:"min=0"`        // Minutes
	CoursesCompleted int `json:"coursesCompleted" binding:"min=0"`
	LessonsCompleted int `json:"lessonsCompleted" binding:"min=0"`
}

// ActivityService 学习活动台账：按日累计并驱动连续天数更新
type ActivityService struct {
	ActivityRepo   *repository.ActivityRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Streak         *StreakService
}

func NewActivityService(
	activityRepo *repository.ActivityRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	streak *StreakService,
) *ActivityService {
	return &ActivityService{
		ActivityRepo:   activityRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		Streak:         streak,
	}
}

// LogActivity 累计当日活动量并推进连续学习天数
func (s *ActivityService) LogActivity(userID uint, delta ActivityDelta) (*model.UserActivity, *model.LearningStreak, error) {
	today := NormalizeDay(time.Now())

	activity, err := s.ActivityRepo.IncrementDaily(userID, today, delta.StudyTime, delta.CoursesCompleted, delta.LessonsCompleted)
	if err != nil {
		return nil, nil, err
	}

	streak, err := s.Streak.RecordActivity(userID, today)
	if err != nil {
		return nil, nil, err
	}

	return activity, streak, nil
}

// DashboardStats 仪表盘顶部统计
type DashboardStats struct {
	TotalCourses     int64 `json:"totalCourses"`
	CompletedCourses int64 `json:"completedCourses"`
	StudyHours       int   `json:"studyHours"`
	Certificates     int64 `json:"certificates"`
}

// GetStats 统计当月学习时长与课程完成情况
func (s *ActivityService) GetStats(userID uint, now time.Time) (*DashboardStats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	activities, err := s.ActivityRepo.FindByUserInRange(userID, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	totalStudyTime := 0
	for _, a := range activities {
		totalStudyTime += a.StudyTime
	}

	totalCourses, err := s.CourseRepo.CountActive()
	if err != nil {
		return nil, err
	}

	completed, err := s.EnrollmentRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalCourses:     totalCourses,
		CompletedCourses: completed,
		StudyHours:       totalStudyTime / 60,
		Certificates:     completed,
	}, nil
}

// WeeklyActivityEntry 一周内单日的学习时长
type WeeklyActivityEntry struct {
	Day       string `json:"day"`
	StudyTime int    `json:"studyTime"` // Minutes
}

// GetWeeklyActivity 返回本周日到周六共 7 天的学习时长，无记录的天补零
func (s *ActivityService) GetWeeklyActivity(userID uint, now time.Time) ([]WeeklyActivityEntry, error) {
	weekStart := NormalizeDay(now).AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	activities, err := s.ActivityRepo.FindByUserInRange(userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	return weeklyFromRecords(activities, weekStart), nil
}

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func weeklyFromRecords(activities []model.UserActivity, weekStart time.Time) []WeeklyActivityEntry {
	// 按日历日字符串归桶，驱动返回的时区对象不影响匹配
	byDay := make(map[string]int, len(activities))
	for _, a := range activities {
		byDay[a.Date.Format("2006-01-02")] = a.StudyTime
	}

	entries := make([]WeeklyActivityEntry, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		entries[i] = WeeklyActivityEntry{
			Day:       weekdayLabels[i],
			StudyTime: byDay[day.Format("2006-01-02")],
		}
	}
	return entries
}

// MonthlyProgressEntry 单月学习汇总
type MonthlyProgressEntry struct {
	Month     string `json:"month"`
	Progress  int    `json:"progress"` // 0-100，相对每月 20 小时目标
	StudyTime int    `json:"studyTime"`
	Lessons   int    `json:"lessons"`
}

// GetMonthlyProgress 返回最近 6 个月中有活动记录的月份汇总
func (s *ActivityService) GetMonthlyProgress(userID uint, now time.Time) ([]MonthlyProgressEntry, error) {
	entries := []MonthlyProgressEntry{}

	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		activities, err := s.ActivityRepo.FindByUserInRange(userID, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		if len(activities) == 0 {
			continue
		}

		entries = append(entries, monthlySummary(activities, monthStart))
	}

	return entries, nil
}

func monthlySummary(activities []model.UserActivity, monthStart time.Time) MonthlyProgressEntry {
	totalStudyTime := 0
	totalLessons := 0
	for _, a := range activities {
		totalStudyTime += a.StudyTime
		totalLessons += a.LessonsCompleted
	}

	actualHours := float64(totalStudyTime) / 60.0
	progress := int(math.Round(actualHours / monthlyTargetHours * 100))
	if progress > 100 {
		progress = 100
	}

	return MonthlyProgressEntry{
		Month:     monthStart.Format("Jan"),
		Progress:  progress,
		StudyTime: totalStudyTime,
		Lessons:   totalLessons,
	}
}

// GetMonthlyActivity 返回 [from, to) 区间内的原始活动记录
func (s *ActivityService) GetMonthlyActivity(userID uint, from, to time.Time) ([]model.UserActivity, error) {
	return s.ActivityRepo.FindByUserInRange(userID, from, to)
}
