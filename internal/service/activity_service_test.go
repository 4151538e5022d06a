package service

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyFromRecordsIgnoresDateLocation(t *testing.T) {
	weekStart := day(2026, time.March, 1) // 周日

	// 驱动返回的日期可能带独立的时区对象，墙上时间相同也应命中
	_, offset := weekStart.Zone()
	dbLoc := time.FixedZone("mysql", offset)
	records := []model.UserActivity{
		{Date: time.Date(2026, time.March, 3, 0, 0, 0, 0, dbLoc), StudyTime: 45},
	}

	entries := weeklyFromRecords(records, weekStart)

	require.Len(t, entries, 7)
	assert.Equal(t, 45, entries[2].StudyTime) // 周二
}

func TestWeeklyFromRecordsZeroFills(t *testing.T) {
	weekStart := day(2026, time.March, 1) // 周日

	entries := weeklyFromRecords(nil, weekStart)

	require.Len(t, entries, 7)
	assert.Equal(t, "Sun", entries[0].Day)
	assert.Equal(t, "Sat", entries[6].Day)
	for _, e := range entries {
		assert.Equal(t, 0, e.StudyTime)
	}
}

func TestWeeklyFromRecordsPlacesActivityOnRightDay(t *testing.T) {
	weekStart := day(2026, time.March, 1)
	activities := []model.UserActivity{
		{Date: weekStart.AddDate(0, 0, 1), StudyTime: 45},                     // 周一
		{Date: weekStart.AddDate(0, 0, 5).Add(10 * time.Hour), StudyTime: 90}, // 周五，带时刻
	}

	entries := weeklyFromRecords(activities, weekStart)

	assert.Equal(t, WeeklyActivityEntry{Day: "Mon", StudyTime: 45}, entries[1])
	assert.Equal(t, WeeklyActivityEntry{Day: "Fri", StudyTime: 90}, entries[5])
	assert.Equal(t, 0, entries[3].StudyTime)
}

func TestMonthlySummaryAggregates(t *testing.T) {
	monthStart := day(2026, time.February, 1)
	activities := []model.UserActivity{
		{Date: monthStart, StudyTime: 300, LessonsCompleted: 2},
		{Date: monthStart.AddDate(0, 0, 10), StudyTime: 300, LessonsCompleted: 3},
	}

	entry := monthlySummary(activities, monthStart)

	assert.Equal(t, "Feb", entry.Month)
	assert.Equal(t, 600, entry.StudyTime)
	assert.Equal(t, 5, entry.Lessons)
	// 10 小时 / 20 小时目标
	assert.Equal(t, 50, entry.Progress)
}

func TestMonthlySummaryCapsAtHundred(t *testing.T) {
	monthStart := day(2026, time.February, 1)
	activities := []model.UserActivity{
		{Date: monthStart, StudyTime: 60 * 50}, // 50 小时
	}

	entry := monthlySummary(activities, monthStart)

	assert.Equal(t, 100, entry.Progress)
}

func TestMonthlySummaryRoundsProgress(t *testing.T) {
	monthStart := day(2026, time.February, 1)
	activities := []model.UserActivity{
		{Date: monthStart, StudyTime: 100}, // 1.67 小时 -> 8.33%
	}

	entry := monthlySummary(activities, monthStart)

	assert.Equal(t, 8, entry.Progress)
}
