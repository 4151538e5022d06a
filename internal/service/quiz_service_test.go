package service

import (
	"math/rand"
	"strings"
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCourse() *model.Course {
	return &model.Course{
		Title:    "React 从入门到实战",
		Category: "Frontend",
		Skills:   model.StringList{"React", "JavaScript", "Hooks", "Redux"},
	}
}

func TestGenerateProducesFixedQuestionCount(t *testing.T) {
	svc := NewQuizService()

	questions := svc.Generate(testCourse(), rand.New(rand.NewSource(1)))

	assert.Len(t, questions, QuizQuestionCount)
}

func TestGeneratePadsWhenSkillsMissing(t *testing.T) {
	svc := NewQuizService()

	// 技能不足甚至为空时仍然补齐到 12 题
	for _, skills := range []model.StringList{nil, {"Go"}, {"Go", "SQL"}} {
		course := &model.Course{Title: "X", Category: "Backend", Skills: skills}
		questions := svc.Generate(course, rand.New(rand.NewSource(1)))
		assert.Len(t, questions, QuizQuestionCount)
	}
}

func TestGenerateClosingQuestionsAreLast(t *testing.T) {
	svc := NewQuizService()
	course := &model.Course{Title: "X", Category: "Data Science"}

	// 收尾两题不参与洗牌，固定在末尾
	questions := svc.Generate(course, rand.New(rand.NewSource(42)))

	require.Len(t, questions, QuizQuestionCount)
	assert.Contains(t, questions[len(questions)-2].Question, "maximizes learning retention")
	assert.Contains(t, questions[len(questions)-1].Question, "MOST secure when handling tokens")
}

func TestGenerateAnswersWithinOptionRange(t *testing.T) {
	svc := NewQuizService()

	for seed := int64(0); seed < 10; seed++ {
		questions := svc.Generate(testCourse(), rand.New(rand.NewSource(seed)))
		for _, q := range questions {
			assert.Len(t, q.Options, 4)
			assert.GreaterOrEqual(t, q.Correct, 0)
			assert.Less(t, q.Correct, len(q.Options))
			assert.NotEmpty(t, q.Question)
			assert.Contains(t, []model.QuizDifficulty{model.DifficultyMedium, model.DifficultyHard}, q.Difficulty)
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	svc := NewQuizService()

	first := svc.Generate(testCourse(), rand.New(rand.NewSource(7)))
	second := svc.Generate(testCourse(), rand.New(rand.NewSource(7)))

	assert.Equal(t, first, second)
}

func TestGenerateDomainQuestionsByCategory(t *testing.T) {
	tests := []struct {
		category string
		expected string
	}{
		{"Frontend", "React rendering performance"},
		{"Backend", "REST API"},
		{"Data Science", "class imbalance"},
		{"DevOps", "class imbalance"}, // 未知类目落入数据科学题库
	}

	svc := NewQuizService()
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			course := &model.Course{Title: "X", Category: tt.category}
			questions := svc.Generate(course, rand.New(rand.NewSource(3)))

			found := false
			for _, q := range questions {
				if strings.Contains(q.Question, tt.expected) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected a question mentioning %q", tt.expected)
		})
	}
}

func TestGenerateSkillDifficulty(t *testing.T) {
	svc := NewQuizService()
	course := &model.Course{Title: "X", Category: "Frontend", Skills: model.StringList{"React", "Redux", "GraphQL"}}

	questions := svc.Generate(course, rand.New(rand.NewSource(5)))

	medium, hard := 0, 0
	for _, q := range questions {
		if strings.Contains(q.Question, "Which best describes") {
			if q.Difficulty == model.DifficultyMedium {
				medium++
			} else {
				hard++
			}
		}
	}
	// 首个技能 Medium，其余 Hard
	assert.Equal(t, 1, medium)
	assert.Equal(t, 2, hard)
}
