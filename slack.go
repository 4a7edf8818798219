package main

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// chatGateway is the chat-platform capability the handlers depend on:
// deliver a threaded reply, and fetch the message at an exact timestamp.
// Handler tests substitute a fake; production wires slackGateway.
type chatGateway interface {
	Reply(ctx context.Context, text, channel, threadTS string) error
	FetchMessage(ctx context.Context, channelID, ts string) (*Message, error)
}

type slackGateway struct {
	client *slack.Client
}

func newSlackGateway(client *slack.Client) *slackGateway {
	return &slackGateway{client: client}
}

func (g *slackGateway) Reply(ctx context.Context, text, channel, threadTS string) error {
	_, _, err := g.client.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("failed to post thread reply: %w", err)
	}
	return nil
}

// FetchMessage retrieves the single message at the given timestamp from the
// channel history. Returns (nil, nil) when the history contains no message
// at that timestamp; that case is recoverable and up to the caller.
func (g *slackGateway) FetchMessage(ctx context.Context, channelID, ts string) (*Message, error) {
	history, err := g.client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Latest:    ts,
		Limit:     1,
		Inclusive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation history: %w", err)
	}

	if len(history.Messages) == 0 {
		return nil, nil
	}

	msg := history.Messages[0]
	return &Message{
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	}, nil
}
