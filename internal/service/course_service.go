package service

import (
	"context"
	"encoding/json"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "courses:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// CourseService 课程目录与选课
type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		Redis:          rdb,
	}
}

// ListCourses 课程目录，无筛选条件时走 Redis 缓存
func (s *CourseService) ListCourses(ctx context.Context, filter repository.CourseFilter) ([]model.Course, error) {
	cacheable := filter.Category == "" && filter.Level == "" && filter.Search == "" && s.Redis != nil

	if cacheable {
		cached, err := s.Redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var courses []model.Course
			if json.Unmarshal([]byte(cached), &courses) == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.CourseRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(courses); err == nil {
			s.Redis.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
		}
	}

	return courses, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Enroll 选课，(user, course) 已存在时返回冲突错误
func (s *CourseService) Enroll(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}

	_, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:           userID,
		CourseID:         courseID,
		StartedAt:        time.Now(),
		CompletedLessons: model.CompletedLessonList{},
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}

	if err := s.CourseRepo.IncrementEnrolled(courseID); err != nil {
		logger.Log.Warn("failed to bump enrolled counter", zap.Uint("courseId", courseID), zap.Error(err))
	}
	s.invalidateCatalog(ctx)

	return enrollment, nil
}

func (s *CourseService) ListEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindAllByUser(userID)
}

// CompleteLesson 标记课时完成并重算进度百分比，重复标记不产生变化
func (s *CourseService) CompleteLesson(userID, courseID uint, lessonID string) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}

	if enrollment.CompletedLessons.Contains(lessonID) {
		return enrollment, nil
	}

	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	enrollment.CompletedLessons = append(enrollment.CompletedLessons, model.CompletedLesson{
		LessonID:    lessonID,
		CompletedAt: time.Now(),
	})
	if len(course.Lessons) > 0 {
		enrollment.Progress = float64(len(enrollment.CompletedLessons)) / float64(len(course.Lessons)) * 100
	}

	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// CompleteCourse 测验通过后的结课入口：进度置满并记录完成时间
func (s *CourseService) CompleteCourse(userID, courseID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	enrollment.IsCompleted = true
	enrollment.CompletedAt = &now
	enrollment.Progress = 100

	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate course catalog cache", zap.Error(err))
	}
}
