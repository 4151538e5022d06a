package service

import (
	"math"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

// SanitizedAssessment 下发给学员的测评视图，题目不含正确答案与解析
type SanitizedAssessment struct {
	ID           uint                `json:"id"`
	CourseID     uint                `json:"courseId"`
	LessonID     string              `json:"lessonId"`
	Title        string              `json:"title"`
	Type         string              `json:"type"`
	Questions    []SanitizedQuestion `json:"questions"`
	PassingScore int                 `json:"passingScore"`
	TimeLimit    int                 `json:"timeLimit"`
}

type SanitizedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AssessmentSubmission 测评提交请求
type AssessmentSubmission struct {
	Answers   []model.SubmittedAnswer `json:"answers" binding:"required"`
	TimeSpent int                     `json:"timeSpent" binding:"min=0"` // Minutes
}

// AssessmentOutcome 测评判分结果
type AssessmentOutcome struct {
	Score          int  `json:"score"`
	Passed         bool `json:"passed"`
	CorrectAnswers int  `json:"correctAnswers"`
	TotalQuestions int  `json:"totalQuestions"`
	PassingScore   int  `json:"passingScore"`
}

// AssessmentService 持久化测评的查询与判分
type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{AssessmentRepo: assessmentRepo}
}

// ListByCourse 某课程下的全部测评（脱敏）
func (s *AssessmentService) ListByCourse(courseID uint) ([]SanitizedAssessment, error) {
	assessments, err := s.AssessmentRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	sanitized := make([]SanitizedAssessment, 0, len(assessments))
	for i := range assessments {
		sanitized = append(sanitized, sanitizeAssessment(&assessments[i]))
	}
	return sanitized, nil
}

// Get 单个测评（脱敏）
func (s *AssessmentService) Get(id uint) (*SanitizedAssessment, error) {
	assessment, err := s.AssessmentRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}

	sanitized := sanitizeAssessment(assessment)
	return &sanitized, nil
}

// Submit 判分并落库。分数按正确题数占比取整，及格线取测评自身配置。
func (s *AssessmentService) Submit(userID, assessmentID uint, submission AssessmentSubmission) (*AssessmentOutcome, error) {
	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, answer := range submission.Answers {
		if answer.QuestionIndex < 0 || answer.QuestionIndex >= len(assessment.Questions) {
			continue
		}
		if answer.SelectedAnswer == assessment.Questions[answer.QuestionIndex].CorrectAnswer {
			correct++
		}
	}

	score := 0
	if len(assessment.Questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(assessment.Questions)) * 100))
	}
	passed := score >= assessment.PassingScore

	result := &model.AssessmentResult{
		UserID:       userID,
		AssessmentID: assessment.ID,
		Answers:      submission.Answers,
		Score:        score,
		Passed:       passed,
		TimeSpent:    submission.TimeSpent,
		CompletedAt:  time.Now(),
	}
	if err := s.AssessmentRepo.CreateResult(result); err != nil {
		return nil, err
	}

	return &AssessmentOutcome{
		Score:          score,
		Passed:         passed,
		CorrectAnswers: correct,
		TotalQuestions: len(assessment.Questions),
		PassingScore:   assessment.PassingScore,
	}, nil
}

// ListUserResults 用户历史测评结果
func (s *AssessmentService) ListUserResults(userID uint) ([]model.AssessmentResult, error) {
	return s.AssessmentRepo.FindResultsByUser(userID)
}

func sanitizeAssessment(a *model.Assessment) SanitizedAssessment {
	questions := make([]SanitizedQuestion, len(a.Questions))
	for i, q := range a.Questions {
		questions[i] = SanitizedQuestion{
			Question: q.Question,
			Options:  q.Options,
		}
	}
	return SanitizedAssessment{
		ID:           a.ID,
		CourseID:     a.CourseID,
		LessonID:     a.LessonID,
		Title:        a.Title,
		Type:         a.Type,
		Questions:    questions,
		PassingScore: a.PassingScore,
		TimeLimit:    a.TimeLimit,
	}
}
