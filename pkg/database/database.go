package database

import (
	"fmt"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.UserActivity{},
		&model.LearningStreak{},
		&model.Assessment{},
		&model.AssessmentResult{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 课程目录为空时插入默认课程
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		for _, c := range defaultCourses() {
			db.Create(&c)
		}
		log.Println("Default course catalog seeded")
	}

	return db, nil
}

func defaultCourses() []model.Course {
	return []model.Course{
		{
			Title:       "React 从入门到实战",
			Description: "组件化思维、Hooks 与状态管理，从零构建现代前端应用。",
			Category:    "Frontend",
			Level:       model.Beginner,
			Duration:    24,
			Instructor:  "Sarah Chen",
			Skills:      model.StringList{"React", "JavaScript", "Hooks"},
			Lessons: model.LessonList{
				{Title: "Introduction to React", Duration: 45},
				{Title: "Components and Props", Duration: 60},
				{Title: "State and Lifecycle", Duration: 60},
				{Title: "Hooks in Depth", Duration: 90},
				{Title: "Routing and Data Fetching", Duration: 75},
				{Title: "Building a Complete App", Duration: 120},
			},
		},
		{
			Title:       "Node.js 后端开发",
			Description: "REST API 设计、数据库访问与鉴权，构建可上线的后端服务。",
			Category:    "Backend",
			Level:       model.Intermediate,
			Duration:    30,
			Instructor:  "Miguel Torres",
			Skills:      model.StringList{"Node.js", "Express", "MongoDB"},
			Lessons: model.LessonList{
				{Title: "Node.js Fundamentals", Duration: 60},
				{Title: "Express and Middleware", Duration: 75},
				{Title: "Database Integration", Duration: 90},
				{Title: "Authentication and Security", Duration: 90},
				{Title: "Testing and Deployment", Duration: 75},
			},
		},
		{
			Title:       "机器学习基础",
			Description: "监督学习、模型评估与过拟合治理，打下扎实的 ML 基础。",
			Category:    "Data Science",
			Level:       model.Intermediate,
			Duration:    36,
			Instructor:  "Dr. Amara Okafor",
			Skills:      model.StringList{"Python", "Pandas", "Scikit-learn"},
			Lessons: model.LessonList{
				{Title: "ML Landscape", Duration: 45},
				{Title: "Data Preparation", Duration: 90},
				{Title: "Classification Models", Duration: 90},
				{Title: "Model Evaluation", Duration: 75},
				{Title: "Regularization and Tuning", Duration: 90},
				{Title: "Capstone Project", Duration: 150},
			},
		},
	}
}
