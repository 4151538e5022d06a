package model

import (
	"database/sql/driver"
	"encoding/json"
)

type CourseLevel string

const (
	Beginner     CourseLevel = "Beginner"
	Intermediate CourseLevel = "Intermediate"
	Advanced     CourseLevel = "Advanced"
)

// Lesson 课程中的单节课（内嵌存储，不单独建表）
type Lesson struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"` // Minutes
}

type LessonList []Lesson

func (l LessonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *LessonList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// swagger:model Course
type Course struct {
	BaseModel
	Title            string      `gorm:"size:255;not null" json:"title"`
	Description      string      `gorm:"type:text" json:"description"`
	Category         string      `gorm:"size:50;index;not null" json:"category"`
	Level            CourseLevel `gorm:"type:enum('Beginner','Intermediate','Advanced');not null" json:"level"`
	Duration         int         `gorm:"default:0" json:"duration"` // Hours
	Lessons          LessonList  `gorm:"type:json" json:"lessons"`
	Skills           StringList  `gorm:"type:json" json:"skills"`
	Instructor       string      `gorm:"size:100;not null" json:"instructor"`
	Rating           float64     `gorm:"default:4.5" json:"rating"`
	EnrolledStudents int         `gorm:"default:0" json:"enrolledStudents"`
	Price            float64     `gorm:"default:0" json:"price"`
	Thumbnail        string      `gorm:"size:255" json:"thumbnail"`
	IsActive         bool        `gorm:"default:true" json:"isActive"`
}

func (Course) TableName() string {
	return "courses"
}
