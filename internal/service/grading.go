package service

import "strings"

// normalizeAnswer makes grading case-insensitive and whitespace-tolerant:
// " Paris " and "paris" are the same answer.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func answersMatch(correct, given string) bool {
	return normalizeAnswer(correct) == normalizeAnswer(given)
}

// gradedAnswer is one graded question, independent of whether it came from
// an assignment or a test.
type gradedAnswer struct {
	QuestionID   uint
	Answer       string
	IsCorrect    bool
	PointsEarned int
}

type question interface {
	GetID() uint
	GetCorrectAnswer() string
	GetPoints() int
}

// gradeAnswers scores the submitted answers against the question list.
// Unanswered questions earn zero; answers to unknown question ids are
// ignored.
func gradeAnswers(questions []question, submitted map[uint]string) (graded []gradedAnswer, score, total int) {
	graded = make([]gradedAnswer, 0, len(questions))
	for _, q := range questions {
		total += q.GetPoints()

		answer, ok := submitted[q.GetID()]
		ga := gradedAnswer{
			QuestionID: q.GetID(),
			Answer:     answer,
		}
		if ok && answersMatch(q.GetCorrectAnswer(), answer) {
			ga.IsCorrect = true
			ga.PointsEarned = q.GetPoints()
			score += q.GetPoints()
		}
		graded = append(graded, ga)
	}
	return graded, score, total
}

func percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
