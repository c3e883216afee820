package usecase

// SubmitLeadInput is the raw submission payload from the mobile client.
// Defaults for the optional fields are applied once, at the validation
// boundary, before anything downstream sees the value.
type SubmitLeadInput struct {
	FirstName            string         `json:"firstName"`
	LastName             string         `json:"lastName"`
	Email                string         `json:"email"`
	Phone                string         `json:"phone"`
	PreferredContact     string         `json:"preferredContact"`
	PracticeArea         string         `json:"practiceArea"`
	PracticeAreaCategory string         `json:"practiceAreaCategory"`
	Urgency              string         `json:"urgency"`
	Description          string         `json:"description"`
	QuizAnswers          map[string]any `json:"quizAnswers"`
	Source               string         `json:"source"`
}

type SubmitLeadOutput struct {
	Success           bool   `json:"success"`
	LeadID            string `json:"leadId"`
	Message           string `json:"message"`
	EstimatedResponse string `json:"estimatedResponse"`
}
