package service

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAdvanceStreakFirstActivity(t *testing.T) {
	today := day(2026, time.March, 10)

	state := AdvanceStreak(nil, today)

	require.NotNil(t, state)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 1, state.LongestStreak)
	assert.Equal(t, today, *state.LastActivityDate)
	assert.Equal(t, model.DateList{today}, state.StreakDates)
}

func TestAdvanceStreakConsecutiveDays(t *testing.T) {
	var state *model.LearningStreak
	start := day(2026, time.March, 1)

	for i := 0; i < 5; i++ {
		state = AdvanceStreak(state, start.AddDate(0, 0, i))
	}

	assert.Equal(t, 5, state.CurrentStreak)
	assert.Equal(t, 5, state.LongestStreak)
	assert.Len(t, state.StreakDates, 5)
}

func TestAdvanceStreakSameDayIdempotent(t *testing.T) {
	today := day(2026, time.March, 10)

	state := AdvanceStreak(nil, today)
	state = AdvanceStreak(state, today)
	state = AdvanceStreak(state, today.Add(15*time.Hour)) // 同一天的晚些时候

	assert.Equal(t, 1, state.CurrentStreak)
	assert.Len(t, state.StreakDates, 1)
}

func TestAdvanceStreakGapResetsButKeepsLongest(t *testing.T) {
	var state *model.LearningStreak
	start := day(2026, time.March, 1)

	for i := 0; i < 4; i++ {
		state = AdvanceStreak(state, start.AddDate(0, 0, i))
	}
	require.Equal(t, 4, state.CurrentStreak)

	// 中断 3 天后再次学习
	state = AdvanceStreak(state, start.AddDate(0, 0, 7))

	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 4, state.LongestStreak)
	assert.Equal(t, model.DateList{start.AddDate(0, 0, 7)}, state.StreakDates)
}

func TestAdvanceStreakTrimsToThirtyDates(t *testing.T) {
	var state *model.LearningStreak
	start := day(2026, time.January, 1)

	for i := 0; i < 45; i++ {
		state = AdvanceStreak(state, start.AddDate(0, 0, i))
	}

	assert.Equal(t, 45, state.CurrentStreak)
	assert.Equal(t, 45, state.LongestStreak)
	require.Len(t, state.StreakDates, maxStreakDates)
	// 保留的是最近 30 天
	assert.Equal(t, start.AddDate(0, 0, 44), state.StreakDates[len(state.StreakDates)-1])
	assert.Equal(t, start.AddDate(0, 0, 15), state.StreakDates[0])
}

func TestAdvanceStreakEarlierDateIsNoOp(t *testing.T) {
	today := day(2026, time.March, 10)

	state := AdvanceStreak(nil, today)
	state = AdvanceStreak(state, today.AddDate(0, 0, -3))

	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, today, *state.LastActivityDate)
	assert.Equal(t, model.DateList{today}, state.StreakDates)
}

func TestAdvanceStreakNilLastActivityDate(t *testing.T) {
	today := day(2026, time.March, 10)
	state := &model.LearningStreak{
		CurrentStreak: 7,
		LongestStreak: 9,
	}

	state = AdvanceStreak(state, today)

	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 9, state.LongestStreak)
	assert.Equal(t, model.DateList{today}, state.StreakDates)
}

func TestNormalizeDay(t *testing.T) {
	ts := time.Date(2026, time.March, 10, 18, 42, 7, 999, time.Local)
	assert.Equal(t, day(2026, time.March, 10), NormalizeDay(ts))
}
