package events

import (
	"sync"

	"blog_platform/pkg/logger"

	"go.uber.org/zap"
)

// Handler 事件处理函数
type Handler func(Event)

type subscriber struct {
	name string
	ch   chan Event
}

// Bus 进程内事件总线
// Publish 不阻塞调用方：每个订阅者持有独立缓冲队列，队列满则丢弃并告警
// 事件投递失败绝不影响触发它的领域操作
type Bus struct {
	mu          sync.RWMutex
	subscribers []*subscriber
	buffer      int
	wg          sync.WaitGroup
	closed      bool
}

// NewBus 创建事件总线，buffer 为每个订阅者的队列长度
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 256
	}
	return &Bus{buffer: buffer}
}

// Subscribe 注册订阅者，handler 在独立协程中顺序消费
// 单个订阅者内保持发布顺序
func (b *Bus) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	sub := &subscriber{
		name: name,
		ch:   make(chan Event, b.buffer),
	}
	b.subscribers = append(b.subscribers, sub)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for e := range sub.ch {
			handler(e)
		}
	}()
}

// Publish 发布事件，非阻塞
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	for _, sub := range b.subscribers {
		select {
		case sub.ch <- e:
		default:
			if logger.Log != nil {
				logger.Log.Warn("event queue full, dropping event",
					zap.String("subscriber", sub.name),
					zap.String("type", string(e.Type)),
				)
			}
		}
	}
}

// Close 关闭总线并等待所有订阅者消费完队列
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, sub := range b.subscribers {
		close(sub.ch)
	}
	b.mu.Unlock()

	b.wg.Wait()
}
