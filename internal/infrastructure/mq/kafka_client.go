// Package mq 封装 Kafka 底层连接
// 纯技术组件，不包含通知业务逻辑
package mq

import (
	"context"
	"time"

	"github.com/Min-owo17/Mysic/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaClient Kafka 客户端
type KafkaClient struct {
	Producer *kafka.Writer // 生产者
	Consumer *kafka.Reader // 消费者
}

// NewKafkaClient 根据配置创建生产者和消费者
func NewKafkaClient(conf *config.KafkaConfig) *KafkaClient {
	timeout := conf.Timeout * time.Second
	if timeout <= 0 {
		timeout = time.Second
	}
	return &KafkaClient{
		Producer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.NotificationTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           timeout,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: true,
		},
		Consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{conf.HostPort},
			Topic:          conf.NotificationTopic,
			CommitInterval: timeout,
			GroupID:        conf.GroupID,
			StartOffset:    kafka.LastOffset,
		}),
	}
}

// SendMessage 写入一条消息，key 决定分区
func (k *KafkaClient) SendMessage(ctx context.Context, key, value []byte) error {
	return k.Producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

// ReadMessage 阻塞读取下一条消息
func (k *KafkaClient) ReadMessage(ctx context.Context) (kafka.Message, error) {
	return k.Consumer.ReadMessage(ctx)
}

// Close 关闭生产者和消费者
func (k *KafkaClient) Close() {
	if err := k.Producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := k.Consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}
