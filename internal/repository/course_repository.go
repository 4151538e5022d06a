package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter 课程目录筛选条件
type CourseFilter struct {
	Category string
	Level    string
	Search   string
}

func (r *CourseRepository) FindAll(filter CourseFilter) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", searchTerm, searchTerm)
	}

	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// IncrementEnrolled 选课人数 +1，避免读改写竞争
func (r *CourseRepository) IncrementEnrolled(courseID uint) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", courseID).
		UpdateColumn("enrolled_students", gorm.Expr("enrolled_students + 1")).Error
}
