package main

import (
	"careerprep/store"
)

// sampleQuestions gives a fresh deployment something to serve. Inserts
// are keyed on the question text, so re-running the seed is harmless.
var sampleQuestions = []store.SeedQuestion{
	{
		Question:      "What is 15% of 200?",
		Options:       []string{"25", "30", "35", "40"},
		CorrectAnswer: 1,
		Explanation:   "15% of 200 = (15/100) × 200 = 30",
		Category:      "quantitative",
		Difficulty:    "easy",
	},
	{
		Question:      "If all roses are flowers and some flowers are red, which statement is true?",
		Options:       []string{"All roses are red", "Some roses are red", "No roses are red", "Cannot be determined"},
		CorrectAnswer: 3,
		Explanation:   "We know roses are flowers, and some flowers are red, but we cannot conclude that roses are red.",
		Category:      "logical",
		Difficulty:    "medium",
	},
	{
		Question:      "Choose the synonym of \"Benevolent\":",
		Options:       []string{"Malevolent", "Kind", "Hostile", "Cruel"},
		CorrectAnswer: 1,
		Explanation:   "Benevolent means kind and well-meaning.",
		Category:      "verbal",
		Difficulty:    "medium",
	},
	{
		Question:      "A train travels 60 km in 45 minutes. What is its speed in km/h?",
		Options:       []string{"75", "80", "85", "90"},
		CorrectAnswer: 1,
		Explanation:   "Speed = 60 km ÷ 0.75 h = 80 km/h.",
		Category:      "quantitative",
		Difficulty:    "medium",
	},
	{
		Question:      "Which number comes next: 2, 6, 12, 20, 30, ...?",
		Options:       []string{"40", "42", "44", "46"},
		CorrectAnswer: 1,
		Explanation:   "Differences grow by 2 (4, 6, 8, 10), so the next term is 30 + 12 = 42.",
		Category:      "logical",
		Difficulty:    "easy",
	},
}
