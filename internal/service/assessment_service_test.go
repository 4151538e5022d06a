package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeAssessmentStripsAnswers(t *testing.T) {
	assessment := &model.Assessment{
		CourseID:     3,
		Title:        "React 结课测评",
		Type:         "quiz",
		PassingScore: 70,
		TimeLimit:    30,
		Questions: model.AssessmentQuestionList{
			{
				Question:      "What is JSX?",
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: 2,
				Explanation:   "JSX is a syntax extension",
			},
		},
	}

	sanitized := sanitizeAssessment(assessment)

	require.Len(t, sanitized.Questions, 1)
	assert.Equal(t, "What is JSX?", sanitized.Questions[0].Question)
	assert.Equal(t, []string{"a", "b", "c", "d"}, sanitized.Questions[0].Options)
	assert.Equal(t, 70, sanitized.PassingScore)
	assert.Equal(t, "React 结课测评", sanitized.Title)
}
