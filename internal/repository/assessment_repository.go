package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) FindByCourse(courseID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("course_id = ?", courseID).Order("created_at ASC").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.DB.First(&assessment, id).Error
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	return r.DB.Create(assessment).Error
}

func (r *AssessmentRepository) CreateResult(result *model.AssessmentResult) error {
	return r.DB.Create(result).Error
}

// FindResultsByUser 返回用户全部测评结果，预加载测评信息
func (r *AssessmentRepository) FindResultsByUser(userID uint) ([]model.AssessmentResult, error) {
	var results []model.AssessmentResult
	err := r.DB.Preload("Assessment").Where("user_id = ?", userID).
		Order("completed_at DESC").Find(&results).Error
	return results, err
}
