package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// CompletedLesson 已完成课时记录（按 lessonId 去重）
type CompletedLesson struct {
	LessonID    string    `json:"lessonId"`
	CompletedAt time.Time `json:"completedAt"`
}

type CompletedLessonList []CompletedLesson

func (l CompletedLessonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *CompletedLessonList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Contains 判断课时是否已标记完成
func (l CompletedLessonList) Contains(lessonID string) bool {
	for _, cl := range l {
		if cl.LessonID == lessonID {
			return true
		}
	}
	return false
}

// Enrollment 用户选课记录，(user, course) 唯一
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID           uint                `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned;not null" json:"userId"`
	CourseID         uint                `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned;not null" json:"courseId"`
	Course           *Course             `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Progress         float64             `gorm:"default:0" json:"progress"` // 0-100
	CompletedLessons CompletedLessonList `gorm:"type:json" json:"completedLessons"`
	StartedAt        time.Time           `json:"startedAt"`
	CompletedAt      *time.Time          `json:"completedAt"`
	IsCompleted      bool                `gorm:"default:false" json:"isCompleted"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
