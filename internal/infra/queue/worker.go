package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/casereach/intake-api/internal/infra/integration/captorra"
)

// CRMClient is the contract the worker needs from the Captorra integration.
type CRMClient interface {
	CreateOpportunity(ctx context.Context, input captorra.CreateOpportunityInput) (string, error)
}

type Worker struct {
	Channel   *amqp.Channel
	CRMClient CRMClient
}

func NewWorker(ch *amqp.Channel, crmClient CRMClient) *Worker {
	return &Worker{
		Channel:   ch,
		CRMClient: crmClient,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload CRMSyncPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] malformed sync job, rejecting: %s", err)
				// Poison message; send to the DLQ instead of blocking the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] syncing lead %s to CRM", payload.LeadID)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] CRM sync failed for lead %s: %s", payload.LeadID, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] CRM sync worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload CRMSyncPayload) error {
	opportunityID, err := w.CRMClient.CreateOpportunity(ctx, captorra.CreateOpportunityInput{
		ExternalID:   payload.LeadID,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Description:  payload.Description,
		PracticeArea: payload.PracticeArea,
		PracticeType: payload.PracticeAreaCategory,
		Urgency:      payload.Urgency,
		LeadSource:   payload.Source,
	})
	if err != nil {
		return err
	}

	log.Printf("✅ [WORKER] lead %s synced, opportunity %s", payload.LeadID, opportunityID)
	return nil
}
