package model

import (
	"time"
)

// LearningStreak 用户连续学习天数状态，每个用户一条
// 不变式：LongestStreak >= CurrentStreak；StreakDates 最多保留 30 天
// swagger:model LearningStreak
type LearningStreak struct {
	BaseModel
	UserID           uint       `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	CurrentStreak    int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak    int        `gorm:"default:0" json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
	StreakDates      DateList   `gorm:"type:json" json:"streakDates"`
}

func (LearningStreak) TableName() string {
	return "learning_streaks"
}
