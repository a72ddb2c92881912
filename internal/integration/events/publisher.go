// Package events publica no Kafka as transições de modo da integração.
package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/shared/kafka"
	contracts "github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

type Publisher interface {
	PublishModeChanged(ctx context.Context, e contracts.ModeChanged) error
}

// KafkaPublisher encapsula o writer Kafka e o logger.
type KafkaPublisher struct {
	writer kafka.MessageWriter
	log    *zap.Logger
}

// NewKafkaPublisher cria o writer do tópico. Em dev o tópico é criado antes;
// falha nessa etapa só gera warning, o writer tem AllowAutoTopicCreation.
func NewKafkaPublisher(ctx context.Context, brokers, topic string, ensureTopic bool, log *zap.Logger) *KafkaPublisher {
	if ensureTopic {
		ctrlCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := kafka.EnsureTopic(ctrlCtx, brokers, topic); err != nil {
			log.Warn("failed to ensure kafka topic", zap.String("topic", topic), zap.Error(err))
		}
	}
	return NewPublisher(kafka.NewWriter(brokers, topic), log)
}

// NewPublisher aceita qualquer writer (testes usam um fake)
func NewPublisher(w kafka.MessageWriter, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log}
}

// PublishModeChanged usa o serviço de origem como chave: as transições de um
// mesmo processo ficam ordenadas na partição.
func (p *KafkaPublisher) PublishModeChanged(ctx context.Context, e contracts.ModeChanged) error {
	if err := kafka.WriteJSON(ctx, p.writer, e.Source, e); err != nil {
		p.log.Error("failed to publish mode change", zap.Error(err))
		return err
	}
	p.log.Debug("published mode change", zap.String("from", e.From), zap.String("to", e.To))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
