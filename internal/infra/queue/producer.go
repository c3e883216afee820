package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/casereach/intake-api/internal/entity"
)

// CRMSyncPayload is the plaintext lead snapshot handed to the sync worker.
type CRMSyncPayload struct {
	LeadID               string `json:"lead_id"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Description          string `json:"description"`
	PracticeArea         string `json:"practice_area"`
	PracticeAreaCategory string `json:"practice_area_category"`
	Urgency              string `json:"urgency"`
	Source               string `json:"source"`
}

// Producer publishes CRM sync jobs. It satisfies the pipeline's CRMService,
// making the queue a drop-in replacement for the direct HTTP client.
type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) SyncLead(ctx context.Context, lead *entity.Lead) error {
	payload := CRMSyncPayload{
		LeadID:               lead.ID,
		FirstName:            lead.FirstName,
		LastName:             lead.LastName,
		Email:                lead.Email,
		Phone:                lead.Phone,
		Description:          lead.Description,
		PracticeArea:         lead.PracticeArea,
		PracticeAreaCategory: lead.PracticeAreaCategory,
		Urgency:              lead.Urgency,
		Source:               lead.Source,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize sync payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survive a broker restart
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish CRM sync job: %w", err)
	}

	return nil
}
