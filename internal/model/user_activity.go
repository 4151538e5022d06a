package model

import (
	"time"
)

// UserActivity 按 (user, day) 累计的学习活动记录
// swagger:model UserActivity
type UserActivity struct {
	BaseModel
	UserID           uint      `gorm:"uniqueIndex:idx_user_activity_date;type:bigint unsigned;not null" json:"userId"`
	Date             time.Time `gorm:"uniqueIndex:idx_user_activity_date;not null" json:"date"` // 归一化到当日零点
	StudyTime        int       `gorm:"default:0" json:"studyTime"`                              // Minutes
	CoursesCompleted int       `gorm:"default:0" json:"coursesCompleted"`
	LessonsCompleted int       `gorm:"default:0" json:"lessonsCompleted"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
