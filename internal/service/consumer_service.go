// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"auditpath-quiz-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	generationService IGenerationService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	generationService IGenerationService,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		generationService: generationService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage runs one generation job. Jobs are processed sequentially;
// the per-chunk claim inside the pipeline makes redelivery safe.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishGenerationMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal generation job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing generation job for chunk %s", payload.ChunkId)

	if err := cs.generationService.GenerateForChunk(ctx, payload.UserId, payload.ChunkId); err != nil {
		log.Printf("[ERROR] Generation failed for chunk %s: %v", payload.ChunkId, err)
		// The pipeline already marked the chunk failed and emitted the ERROR
		// event; retrying a mapping failure immediately would just burn
		// provider quota.
		msg.Ack()
		return
	}

	msg.Ack()
}
