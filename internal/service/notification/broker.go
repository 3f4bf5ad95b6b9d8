// Package notification 实现站内通知的查询与实时推送
// 通知在业务事务中写库，提交后经 Broker 推送给在线用户
package notification

import (
	"context"
	"errors"
)

// ErrBrokerClosed Broker 已关闭
var ErrBrokerClosed = errors.New("notification broker closed")

// Deliverer 把消息投递给在线连接，由 websocket.Hub 实现
type Deliverer interface {
	Deliver(userID uint, payload []byte) bool
}

// Broker 通知推送通道
// channel 模式在进程内转发，kafka 模式经 topic 转发，便于多实例部署
type Broker interface {
	Publish(ctx context.Context, receiverID uint, payload []byte) error
	// Start 阻塞运行，直到 ctx 取消或 Close
	Start(ctx context.Context)
	Close()
}

// Event 一条待推送的消息
type Event struct {
	ReceiverID uint
	Payload    []byte
}
