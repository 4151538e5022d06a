package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindAllByUser 返回用户全部选课记录，预加载课程元数据
func (r *EnrollmentRepository) FindAllByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Course").Where("user_id = ?", userID).
		Order("started_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *EnrollmentRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND is_completed = ?", userID, true).Count(&count).Error
	return count, err
}
