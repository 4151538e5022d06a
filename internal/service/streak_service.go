package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"time"

	"gorm.io/gorm"
)

// maxStreakDates StreakDates 最多保留的天数
const maxStreakDates = 30

// NormalizeDay 将时间归一化到当日零点（本地日历日）
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AdvanceStreak 连续学习天数的状态转移，(旧状态, 今天) 的纯函数。
// state 为 nil 表示首次记录活动。today 早于上次活动日期时不做任何变更。
func AdvanceStreak(state *model.LearningStreak, today time.Time) *model.LearningStreak {
	today = NormalizeDay(today)

	if state == nil {
		return &model.LearningStreak{
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: &today,
			StreakDates:      model.DateList{today},
		}
	}

	if state.LastActivityDate == nil {
		state.CurrentStreak = 1
		state.LastActivityDate = &today
		state.StreakDates = model.DateList{today}
	} else {
		last := NormalizeDay(*state.LastActivityDate)
		daysDiff := int(today.Sub(last).Hours() / 24)

		switch {
		case daysDiff == 0:
			// 同一天重复记录，天数不变
			state.LastActivityDate = &today
		case daysDiff == 1:
			state.CurrentStreak++
			state.StreakDates = append(state.StreakDates, today)
			state.LastActivityDate = &today
		case daysDiff > 1:
			// 连续中断，重新开始
			state.CurrentStreak = 1
			state.StreakDates = model.DateList{today}
			state.LastActivityDate = &today
		default:
			// today 早于已记录日期（时钟回拨/跨时区），保持原状态
			return state
		}
	}

	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}

	if len(state.StreakDates) > maxStreakDates {
		state.StreakDates = state.StreakDates[len(state.StreakDates)-maxStreakDates:]
	}

	return state
}

// StreakService 负责连续学习状态的读取与持久化
type StreakService struct {
	StreakRepo *repository.StreakRepository
}

func NewStreakService(streakRepo *repository.StreakRepository) *StreakService {
	return &StreakService{StreakRepo: streakRepo}
}

// RecordActivity 在记录当日活动后推进连续天数并保存
func (s *StreakService) RecordActivity(userID uint, today time.Time) (*model.LearningStreak, error) {
	streak, err := s.StreakRepo.FindByUser(userID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	streak = AdvanceStreak(streak, today)
	streak.UserID = userID

	if err := s.StreakRepo.Save(streak); err != nil {
		return nil, err
	}
	return streak, nil
}

// GetStreak 查询用户连续学习状态，从未记录过时返回零值状态
func (s *StreakService) GetStreak(userID uint) (*model.LearningStreak, error) {
	streak, err := s.StreakRepo.FindByUser(userID)
	if err == gorm.ErrRecordNotFound {
		return &model.LearningStreak{
			UserID:      userID,
			StreakDates: model.DateList{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}
