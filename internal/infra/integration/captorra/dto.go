package captorra

// CreateOpportunityInput carries the lead fields in Captorra's naming.
// Empty fields are omitted from the request body entirely.
type CreateOpportunityInput struct {
	ExternalID   string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Description  string
	PracticeArea string
	PracticeType string
	Urgency      string
	LeadSource   string
}

type createOpportunityResponse struct {
	Success       bool   `json:"Success"`
	OpportunityID string `json:"OpportunityId"`
	Message       string `json:"Message"`
}
