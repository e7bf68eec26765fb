package events

import (
	"context"
	"log"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicFinanceUpdate is the single finance notification topic. Messages
// carry only the mutated entity name; subscribers refetch full state.
const TopicFinanceUpdate = "finance_update"

// Bus is an in-process pub/sub channel for finance notifications.
type Bus struct {
	channel *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		channel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewStdLogger(false, false),
		),
	}
}

// PublishFinanceUpdate notifies subscribers that finance-relevant data
// changed. Fire-and-forget: failures are logged, never surfaced to the
// request that triggered them.
func (b *Bus) PublishFinanceUpdate(source string) {
	if b == nil || b.channel == nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), []byte(source))
	if err := b.channel.Publish(TopicFinanceUpdate, msg); err != nil {
		log.Printf("[EVENTS] action=publish topic=%s source=%s err=%v", TopicFinanceUpdate, source, err)
	}
}

// SubscribeFinanceUpdates returns the stream of finance notifications.
func (b *Bus) SubscribeFinanceUpdates(ctx context.Context) (<-chan *message.Message, error) {
	return b.channel.Subscribe(ctx, TopicFinanceUpdate)
}

func (b *Bus) Close() error {
	return b.channel.Close()
}

var (
	defaultBus  *Bus
	defaultOnce sync.Once
)

// Default returns the process-wide bus, creating it on first use.
func Default() *Bus {
	defaultOnce.Do(func() {
		defaultBus = NewBus()
	})
	return defaultBus
}

// PublishFinanceUpdate publishes on the default bus.
func PublishFinanceUpdate(source string) {
	Default().PublishFinanceUpdate(source)
}
