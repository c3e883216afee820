package mail

// EmailSender delivers intake mail over SMTP.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// StaffAddress receives the internal new-lead notification.
	StaffAddress string
}

type leadNotificationData struct {
	LeadID           string
	Name             string
	Email            string
	Phone            string
	PreferredContact string
	PracticeArea     string
	Urgency          string
	Description      string
	Source           string
}

type leadConfirmationData struct {
	FirstName         string
	EstimatedResponse string
}
