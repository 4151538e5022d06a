package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// IncrementDaily 按 (user, day) 原子累加当日活动量。
// 单条 upsert 语句完成 find-or-create + 累加，同一用户并发记录不会丢更新。
func (r *ActivityRepository) IncrementDaily(userID uint, date time.Time, studyTime, coursesCompleted, lessonsCompleted int) (*model.UserActivity, error) {
	activity := model.UserActivity{
		UserID:           userID,
		Date:             date,
		StudyTime:        studyTime,
		CoursesCompleted: coursesCompleted,
		LessonsCompleted: lessonsCompleted,
	}

	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"study_time":        gorm.Expr("study_time + ?", studyTime),
			"courses_completed": gorm.Expr("courses_completed + ?", coursesCompleted),
			"lessons_completed": gorm.Expr("lessons_completed + ?", lessonsCompleted),
		}),
	}).Create(&activity).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUserAndDate(userID, date)
}

func (r *ActivityRepository) FindByUserAndDate(userID uint, date time.Time) (*model.UserActivity, error) {
	var activity model.UserActivity
	err := r.DB.Where("user_id = ? AND date = ?", userID, date).First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// FindByUserInRange 返回 [from, to) 区间内的活动记录，按日期升序
func (r *ActivityRepository) FindByUserInRange(userID uint, from, to time.Time) ([]model.UserActivity, error) {
	var activities []model.UserActivity
	err := r.DB.Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").Find(&activities).Error
	return activities, err
}
