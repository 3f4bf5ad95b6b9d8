package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/Min-owo17/Mysic/pkg/constants"

	"go.uber.org/zap"
)

// ChannelBroker 单机模式，进程内 channel 转发
type ChannelBroker struct {
	deliverer Deliverer
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelBroker 创建单机 Broker
func NewChannelBroker(deliverer Deliverer) *ChannelBroker {
	return &ChannelBroker{
		deliverer: deliverer,
		events:    make(chan Event, constants.CHANNEL_SIZE),
		done:      make(chan struct{}),
	}
}

// Publish 缓冲区满时丢弃本次推送
func (b *ChannelBroker) Publish(ctx context.Context, receiverID uint, payload []byte) error {
	select {
	case <-b.done:
		return ErrBrokerClosed
	default:
	}
	select {
	case b.events <- Event{ReceiverID: receiverID, Payload: payload}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		zap.L().Warn("notification channel full, drop push", zap.Uint("receiver_id", receiverID))
		return nil
	}
}

func (b *ChannelBroker) Start(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error(fmt.Sprintf("channel broker panic: %v", r))
		}
	}()
	for {
		select {
		case ev := <-b.events:
			if !b.deliverer.Deliver(ev.ReceiverID, ev.Payload) {
				zap.L().Debug("receiver offline", zap.Uint("receiver_id", ev.ReceiverID))
			}
		case <-ctx.Done():
			return
		case <-b.done:
			return
		}
	}
}

func (b *ChannelBroker) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}
