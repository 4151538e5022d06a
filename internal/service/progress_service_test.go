package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseWith(category string, skills ...string) *model.Course {
	return &model.Course{
		Category: category,
		Skills:   model.StringList(skills),
	}
}

func TestSkillProgressEmpty(t *testing.T) {
	assert.Empty(t, SkillProgress(nil))
	assert.Empty(t, SkillProgress([]model.Enrollment{}))
}

func TestSkillProgressSingleCourse(t *testing.T) {
	enrollments := []model.Enrollment{
		{Course: courseWith("Frontend", "React"), Progress: 80},
	}

	entries := SkillProgress(enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, SkillProgressEntry{Skill: "React", Progress: 80}, entries[0])
}

func TestSkillProgressAveragesSharedSkills(t *testing.T) {
	enrollments := []model.Enrollment{
		{Course: courseWith("Frontend", "JavaScript", "React"), Progress: 100},
		{Course: courseWith("Backend", "JavaScript", "Node.js"), Progress: 50},
	}

	entries := SkillProgress(enrollments)

	require.Len(t, entries, 3)
	// JavaScript 出现在两门课中，取加权平均
	assert.Equal(t, SkillProgressEntry{Skill: "JavaScript", Progress: 75}, entries[0])
	assert.Equal(t, SkillProgressEntry{Skill: "React", Progress: 100}, entries[1])
	assert.Equal(t, SkillProgressEntry{Skill: "Node.js", Progress: 50}, entries[2])
}

func TestSkillProgressRoundsAverage(t *testing.T) {
	enrollments := []model.Enrollment{
		{Course: courseWith("Frontend", "CSS"), Progress: 33},
		{Course: courseWith("Frontend", "CSS"), Progress: 34},
	}

	entries := SkillProgress(enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, 34, entries[0].Progress) // 33.5 四舍五入
}

func TestSkillProgressSkipsMissingCourse(t *testing.T) {
	enrollments := []model.Enrollment{
		{Course: nil, Progress: 90},
		{Course: courseWith("Frontend", "React"), Progress: 40},
	}

	entries := SkillProgress(enrollments)

	require.Len(t, entries, 1)
	assert.Equal(t, "React", entries[0].Skill)
}

func TestCategoryDistributionEmpty(t *testing.T) {
	assert.Empty(t, CategoryDistribution(nil))
}

func TestCategoryDistributionCountsAndPercents(t *testing.T) {
	enrollments := []model.Enrollment{
		{Course: courseWith("Frontend")},
		{Course: courseWith("Frontend")},
		{Course: courseWith("Backend")},
		{Course: courseWith("Data Science")},
	}

	shares := CategoryDistribution(enrollments)

	require.Len(t, shares, 3)
	assert.Equal(t, CategoryShare{Category: "Frontend", Count: 2, Percent: 50}, shares[0])

	totalPercent := 0
	for _, s := range shares {
		totalPercent += s.Percent
	}
	assert.Equal(t, 100, totalPercent)
}

func TestCategoryDistributionSortedByCountDesc(t *testing.T) {
	enrollments := []model.Enrollment{
		{Course: courseWith("Backend")},
		{Course: courseWith("Frontend")},
		{Course: courseWith("Frontend")},
		{Course: courseWith("Frontend")},
		{Course: courseWith("Backend")},
	}

	shares := CategoryDistribution(enrollments)

	require.Len(t, shares, 2)
	assert.Equal(t, "Frontend", shares[0].Category)
	assert.Equal(t, 3, shares[0].Count)
	assert.Equal(t, "Backend", shares[1].Category)
}
