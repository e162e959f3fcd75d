package services

import (
	"careerprep/models"
)

// AnswerResult is what a submission reveals: correctness plus the
// answer key, which the delivery payload deliberately withholds.
type AnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer int    `json:"correctAnswer"`
	CorrectOption string `json:"correctOption"`
	Explanation   string `json:"explanation"`
}

// EvaluateAnswer compares the submitted option index against the stored
// answer. There is no bounds check on selected: an out-of-range index is
// simply a wrong answer.
func EvaluateAnswer(question models.Question, selected int) AnswerResult {
	result := AnswerResult{
		IsCorrect:     selected == question.CorrectAnswer,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
	}
	if question.CorrectAnswer >= 0 && question.CorrectAnswer < len(question.Options) {
		result.CorrectOption = question.Options[question.CorrectAnswer]
	}
	return result
}
