package events

import (
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/ghuser/organcare/pkg/logger"
)

// inProcessBuffer bounds each topic's output channel.
const inProcessBuffer = 64

// NewInProcessEventBus returns a gochannel bus. Messages published before a
// topic has a subscriber are dropped, and nothing survives a restart.
func NewInProcessEventBus(log logger.Logger) *EventBus {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: inProcessBuffer,
	}, newLogAdapter(log))
	return newBus(ch, ch, nil, log)
}
