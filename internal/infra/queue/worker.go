package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/http/middleware"
)

// NotificationSender delivers the staff alert for a captured lead.
type NotificationSender interface {
	SendLeadNotification(payload LeadCapturedPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  NotificationSender
}

func NewWorker(ch *amqp.Channel, sender NotificationSender) *Worker {
	return &Worker{Channel: ch, Sender: sender}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack: manual so failures can dead-letter
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] malformed payload: %s", err)
				middleware.RecordQueueError(queueName)
				// Poison message, reject without requeue so it dead-letters.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] new lead %s (%s)", payload.LeadID, payload.Name)

			if err := w.Sender.SendLeadNotification(payload); err != nil {
				log.Printf("⚠️ [WORKER] notify staff for lead %s: %v", payload.LeadID, err)
				middleware.RecordQueueError(queueName)
				d.Nack(false, false)
				continue
			}

			d.Ack(false)
		}
	}()

	log.Printf("👷 Lead notification worker consuming %s", queueName)
	<-forever
}
