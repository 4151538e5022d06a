package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"math"
	"sort"
)

// SkillProgressEntry 单个技能的加权平均完成度
type SkillProgressEntry struct {
	Skill    string `json:"skill"`
	Progress int    `json:"progress"` // 0-100
}

// SkillProgress 按技能聚合选课进度：每个技能取其关联课程进度的加权平均。
// 课程元数据缺失的选课记录（课程已删除）直接跳过。
func SkillProgress(enrollments []model.Enrollment) []SkillProgressEntry {
	type bucket struct {
		count    int
		weighted float64
	}

	order := []string{}
	buckets := map[string]*bucket{}

	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		for _, skill := range e.Course.Skills {
			b, ok := buckets[skill]
			if !ok {
				b = &bucket{}
				buckets[skill] = b
				order = append(order, skill)
			}
			b.count++
			b.weighted += e.Progress
		}
	}

	entries := make([]SkillProgressEntry, 0, len(order))
	for _, skill := range order {
		b := buckets[skill]
		progress := 0
		if b.count > 0 {
			progress = int(math.Round(b.weighted / float64(b.count)))
		}
		entries = append(entries, SkillProgressEntry{Skill: skill, Progress: progress})
	}
	return entries
}

// CategoryShare 某一课程类目在用户选课中的占比
type CategoryShare struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

// CategoryDistribution 按类目统计选课占比，按数量降序，数量相同保持先见顺序
func CategoryDistribution(enrollments []model.Enrollment) []CategoryShare {
	order := []string{}
	counts := map[string]int{}
	total := 0

	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		if _, ok := counts[e.Course.Category]; !ok {
			order = append(order, e.Course.Category)
		}
		counts[e.Course.Category]++
		total++
	}

	if total == 0 {
		total = 1 // 防御除零，结果集此时本就为空
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, category := range order {
		count := counts[category]
		shares = append(shares, CategoryShare{
			Category: category,
			Count:    count,
			Percent:  int(math.Round(float64(count) / float64(total) * 100)),
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}

// ProgressService 基于选课记录的进度聚合
type ProgressService struct {
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewProgressService(enrollmentRepo *repository.EnrollmentRepository) *ProgressService {
	return &ProgressService{EnrollmentRepo: enrollmentRepo}
}

func (s *ProgressService) UserSkillProgress(userID uint) ([]SkillProgressEntry, error) {
	enrollments, err := s.EnrollmentRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	return SkillProgress(enrollments), nil
}

func (s *ProgressService) UserCategoryDistribution(userID uint) ([]CategoryShare, error) {
	enrollments, err := s.EnrollmentRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	return CategoryDistribution(enrollments), nil
}
