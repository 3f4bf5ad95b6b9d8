package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Min-owo17/Mysic/internal/infrastructure/mq"

	"go.uber.org/zap"
)

// KafkaBroker kafka 模式，key 为接收者 ID，value 为通知 JSON
type KafkaBroker struct {
	client    *mq.KafkaClient
	deliverer Deliverer
}

// NewKafkaBroker 创建 kafka Broker
func NewKafkaBroker(client *mq.KafkaClient, deliverer Deliverer) *KafkaBroker {
	return &KafkaBroker{client: client, deliverer: deliverer}
}

func (b *KafkaBroker) Publish(ctx context.Context, receiverID uint, payload []byte) error {
	key := []byte(strconv.FormatUint(uint64(receiverID), 10))
	if err := b.client.SendMessage(ctx, key, payload); err != nil {
		return fmt.Errorf("publish notification to kafka: %w", err)
	}
	return nil
}

func (b *KafkaBroker) Start(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error(fmt.Sprintf("kafka broker panic: %v", r))
		}
	}()
	for {
		msg, err := b.client.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			zap.L().Error("read notification from kafka", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		receiverID, err := strconv.ParseUint(string(msg.Key), 10, 64)
		if err != nil {
			zap.L().Error("invalid notification key", zap.ByteString("key", msg.Key))
			continue
		}
		b.deliverer.Deliver(uint(receiverID), msg.Value)
	}
}

func (b *KafkaBroker) Close() {
	b.client.Close()
}
