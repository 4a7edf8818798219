package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// App bundles the dependencies the event handlers need. Everything is
// constructed once in main and read-only afterwards, so concurrent events
// share nothing mutable.
type App struct {
	chat       chatGateway
	linear     *LinearClient
	summarizer *Summarizer
	settings   Settings
	config     Config
}

func (a *App) subscribeToReactions(ctx context.Context, rdb *redis.Client) {
	pubsub := rdb.Subscribe(ctx, a.config.RedisReactionChannel)
	defer pubsub.Close()

	log.Printf("Subscribed to Redis channel: %s", a.config.RedisReactionChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			if msg == nil {
				continue
			}
			a.handleReactionEvent(ctx, msg.Payload)
		}
	}
}

func (a *App) handleReactionEvent(ctx context.Context, payload string) {
	var event ReactionAddedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("Error unmarshaling reaction event: %v", err)
		return
	}

	ev := event.Event
	if ev.Type != "reaction_added" || ev.Item.Type != "message" {
		return
	}

	Debug("Reaction added: %s by user %s in channel %s", ev.Reaction, ev.User, ev.Item.Channel)

	rule := matchRule(ev.Reaction, ev.User, a.settings.ReactionMentions)
	if rule == nil {
		return
	}

	Info("マッチしたリアクション: %s", ev.Reaction)

	channel := ev.Item.Channel
	threadTS := ev.Item.Ts
	a.reply(ctx, rule.Mention+" やります！", channel, threadTS)

	message, err := a.chat.FetchMessage(ctx, channel, ev.Item.Ts)
	if err != nil {
		Error("Error retrieving message: %v", err)
		a.reply(ctx, "メッセージの取得に失敗しました。", channel, threadTS)
		return
	}
	if message == nil {
		Warn("No messages found for this timestamp.")
		return
	}

	issue, err := a.summarizer.Summarize(ctx, message.Text)
	if err != nil {
		Error("Issueのタイトルを生成できませんでした: %v", err)
		a.reply(ctx, "Issueのタイトルを生成できませんでした。", channel, threadTS)
		return
	}

	if a.config.DryRun {
		Debug("Creating issue with title: %s", issue.Title)
		return
	}

	teamID, err := a.linear.ResolveTeam(ctx, rule.TeamName)
	if err != nil {
		Error("Failed to resolve team %q: %v", rule.TeamName, err)
		a.reply(ctx, "Issueの作成に失敗しました。", channel, threadTS)
		return
	}
	if teamID == "" {
		Error("Team %q not found in Linear", rule.TeamName)
		a.reply(ctx, "Issueの作成に失敗しました。", channel, threadTS)
		return
	}

	// State assignment is best-effort: an unresolvable state falls back to
	// the team default rather than failing the whole pipeline.
	var stateID string
	if stateName := a.settings.Linear.DefaultState; stateName != "" {
		stateID, err = a.linear.ResolveStateID(ctx, stateName)
		if err != nil {
			Error("Failed to resolve workflow state %q: %v", stateName, err)
		} else if stateID == "" {
			Error("State '%s' not found in the response.", stateName)
		}
	}

	created, err := a.linear.CreateIssue(ctx, teamID, issue.Title, issue.Description, stateID)
	if err != nil {
		Error("Issueの作成に失敗しました: %v", err)
		a.reply(ctx, "Issueの作成に失敗しました。", channel, threadTS)
		return
	}

	a.reply(ctx, fmt.Sprintf("新しいIssueが作成されました: %s (URL: %s)", created.Title, a.issueURL(created.ID)), channel, threadTS)
	Info("Issueが作成されました: %s (ID: %s)", created.Title, created.ID)
}

func (a *App) issueURL(issueID string) string {
	return fmt.Sprintf("https://linear.app/%s/issue/%s", a.config.LinearWorkspace, issueID)
}

func (a *App) subscribeToAppMentions(ctx context.Context, rdb *redis.Client) {
	pubsub := rdb.Subscribe(ctx, a.config.RedisMentionChannel)
	defer pubsub.Close()

	log.Printf("Subscribed to Redis channel: %s", a.config.RedisMentionChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			if msg == nil {
				continue
			}
			a.handleAppMention(ctx, msg.Payload)
		}
	}
}

const helpText = "このボットは、特定のリアクションが付いたメッセージに対して、LinearでIssueを作成します。" +
	"\nリアクションの設定はconfig.yamlで行います。" +
	"\n\nhelp: このメッセージを表示します" +
	"\nping: ボットの応答を確認します" +
	"\nconfig: 現在の設定を表示します"

func (a *App) handleAppMention(ctx context.Context, payload string) {
	var event AppMentionEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("Error unmarshaling mention event: %v", err)
		return
	}

	mention := event.Event
	text := strings.ToLower(mention.Text)

	switch {
	case strings.Contains(text, "ping"):
		a.reply(ctx, "pong", mention.Channel, mention.Ts)
	case strings.Contains(text, "config"):
		a.reply(ctx, "現在の設定は以下の通りです:\n"+a.settingsDump(), mention.Channel, mention.Ts)
	case strings.Contains(text, "help"):
		a.reply(ctx, helpText, mention.Channel, mention.Ts)
	}
}

func (a *App) settingsDump() string {
	out, err := yaml.Marshal(a.settings)
	if err != nil {
		return fmt.Sprintf("%+v", a.settings)
	}
	return string(out)
}

func (a *App) reply(ctx context.Context, text, channel, threadTS string) {
	if err := a.chat.Reply(ctx, text, channel, threadTS); err != nil {
		Error("Error posting thread reply: %v", err)
	}
}
