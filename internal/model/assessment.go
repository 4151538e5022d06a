package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AssessmentQuestionItem 教师编写的测评题目（内嵌存储）
type AssessmentQuestionItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type AssessmentQuestionList []AssessmentQuestionItem

func (l AssessmentQuestionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *AssessmentQuestionList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Assessment 持久化的正式测评，带独立的及格线
// swagger:model Assessment
type Assessment struct {
	BaseModel
	CourseID     uint                   `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	LessonID     string                 `gorm:"size:64" json:"lessonId"`
	Title        string                 `gorm:"size:255;not null" json:"title"`
	Type         string                 `gorm:"type:enum('quiz','assignment','project');default:'quiz'" json:"type"`
	Questions    AssessmentQuestionList `gorm:"type:json" json:"questions"`
	PassingScore int                    `gorm:"default:70" json:"passingScore"`
	TimeLimit    int                    `gorm:"default:30" json:"timeLimit"` // Minutes
}

func (Assessment) TableName() string {
	return "assessments"
}

// SubmittedAnswer 提交的单题答案
type SubmittedAnswer struct {
	QuestionIndex  int `json:"questionIndex"`
	SelectedAnswer int `json:"selectedAnswer"`
}

type SubmittedAnswerList []SubmittedAnswer

func (l SubmittedAnswerList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *SubmittedAnswerList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// AssessmentResult 正式测评的判分结果
// swagger:model AssessmentResult
type AssessmentResult struct {
	BaseModel
	UserID       uint                `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	AssessmentID uint                `gorm:"index;type:bigint unsigned;not null" json:"assessmentId"`
	Assessment   *Assessment         `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	Answers      SubmittedAnswerList `gorm:"type:json" json:"answers"`
	Score        int                 `gorm:"not null" json:"score"` // 0-100
	Passed       bool                `gorm:"not null" json:"passed"`
	TimeSpent    int                 `gorm:"default:0" json:"timeSpent"` // Minutes
	CompletedAt  time.Time           `json:"completedAt"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}
