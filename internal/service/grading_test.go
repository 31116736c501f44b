package service

import (
	"testing"

	"masomo_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "paris", normalizeAnswer("  Paris "))
	assert.Equal(t, "42", normalizeAnswer("42"))
	assert.Equal(t, "", normalizeAnswer("   "))
}

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		name    string
		correct string
		given   string
		want    bool
	}{
		{"exact", "Nairobi", "Nairobi", true},
		{"case insensitive", "Nairobi", "nairobi", true},
		{"whitespace trimmed", "Nairobi", "  Nairobi  ", true},
		{"wrong answer", "Nairobi", "Mombasa", false},
		{"interior whitespace matters", "Rift Valley", "RiftValley", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, answersMatch(tt.correct, tt.given))
		})
	}
}

func testQuestions() []question {
	return []question{
		model.AssignmentQuestion{BaseModel: model.BaseModel{ID: 1}, CorrectAnswer: "Nairobi", Points: 5},
		model.AssignmentQuestion{BaseModel: model.BaseModel{ID: 2}, CorrectAnswer: "1963", Points: 3},
		model.AssignmentQuestion{BaseModel: model.BaseModel{ID: 3}, CorrectAnswer: "Mount Kenya", Points: 2},
	}
}

func TestGradeAnswersAllCorrect(t *testing.T) {
	graded, score, total := gradeAnswers(testQuestions(), map[uint]string{
		1: "nairobi",
		2: " 1963 ",
		3: "Mount Kenya",
	})

	assert.Equal(t, 10, score)
	assert.Equal(t, 10, total)
	assert.Len(t, graded, 3)
	for _, g := range graded {
		assert.True(t, g.IsCorrect)
	}
}

func TestGradeAnswersPartial(t *testing.T) {
	graded, score, total := gradeAnswers(testQuestions(), map[uint]string{
		1: "Nairobi",
		2: "1964",
	})

	assert.Equal(t, 5, score)
	assert.Equal(t, 10, total)
	assert.Len(t, graded, 3)

	assert.True(t, graded[0].IsCorrect)
	assert.Equal(t, 5, graded[0].PointsEarned)
	assert.False(t, graded[1].IsCorrect)
	assert.Equal(t, 0, graded[1].PointsEarned)
	// Unanswered question still appears, with zero points.
	assert.False(t, graded[2].IsCorrect)
	assert.Equal(t, "", graded[2].Answer)
}

func TestGradeAnswersIgnoresUnknownQuestionIDs(t *testing.T) {
	_, score, total := gradeAnswers(testQuestions(), map[uint]string{
		99: "Nairobi",
	})
	assert.Equal(t, 0, score)
	assert.Equal(t, 10, total)
}

func TestGradeAnswersEmptyQuestionList(t *testing.T) {
	graded, score, total := gradeAnswers(nil, map[uint]string{1: "x"})
	assert.Empty(t, graded)
	assert.Zero(t, score)
	assert.Zero(t, total)
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 50.0, percentage(5, 10), 0.001)
	assert.InDelta(t, 100.0, percentage(10, 10), 0.001)
	assert.Zero(t, percentage(0, 0)) // no questions, no divide by zero
}
