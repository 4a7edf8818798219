package main

// ReactionAddedEvent is the Slack event envelope the relay publishes on the
// reaction channel.
type ReactionAddedEvent struct {
	Token   string `json:"token"`
	Type    string `json:"type"`
	EventID string `json:"event_id"`
	Event   struct {
		Type     string `json:"type"`
		User     string `json:"user"`
		Reaction string `json:"reaction"`
		Item     struct {
			Type    string `json:"type"`
			Channel string `json:"channel"`
			Ts      string `json:"ts"`
		} `json:"item"`
		ItemUser string `json:"item_user"`
		EventTs  string `json:"event_ts"`
	} `json:"event"`
}

// AppMentionEvent is the Slack event envelope the relay publishes on the
// mention channel.
type AppMentionEvent struct {
	Token   string `json:"token"`
	Type    string `json:"type"`
	EventID string `json:"event_id"`
	Event   struct {
		Type    string `json:"type"`
		User    string `json:"user"`
		Text    string `json:"text"`
		Ts      string `json:"ts"`
		Channel string `json:"channel"`
		EventTs string `json:"event_ts"`
	} `json:"event"`
}

// RoutingRule routes a (reaction, mentioned user) pair to a Linear team.
// Rules are evaluated in file order; the first match wins.
type RoutingRule struct {
	Reaction string `yaml:"reaction" json:"reaction"`
	Mention  string `yaml:"mention" json:"mention"`
	TeamName string `yaml:"team_name" json:"team_name"`
}

// Message is the reacted-to Slack message.
type Message struct {
	Text      string
	Timestamp string
}

// Issue is a Linear issue draft. ID is empty until Linear assigns one.
type Issue struct {
	ID          string
	Title       string
	Description string
}
