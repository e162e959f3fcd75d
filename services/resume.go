package services

// ResumeAnalysis is the feedback payload stored with each resume check
// and returned to the client.
type ResumeAnalysis struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Suggestions  []string `json:"suggestions"`
	Score        int      `json:"score"`
	Note         string   `json:"note"`
}

// ResumeAnalyzer produces feedback for a resume. The default is
// PlaceholderAnalysis; a real text-analysis backend can be swapped in
// without touching the quota or persistence contract around it.
type ResumeAnalyzer func(resumeText string) ResumeAnalysis

// PlaceholderAnalysis returns fixed feedback. It does not read the
// resume text yet.
// TODO: wire an OpenAI-backed analyzer once an API budget exists.
func PlaceholderAnalysis(string) ResumeAnalysis {
	return ResumeAnalysis{
		Strengths: []string{
			"Clear structure and formatting",
			"Relevant experience mentioned",
		},
		Improvements: []string{
			"Add quantifiable achievements",
			"Include relevant skills section",
			"Tailor content to target role",
		},
		Suggestions: []string{
			"Use action verbs in descriptions",
			"Highlight key accomplishments",
			"Keep resume to 1-2 pages",
		},
		Score: 75,
		Note:  "This is a placeholder analysis. Enable AI integration for detailed feedback.",
	}
}
