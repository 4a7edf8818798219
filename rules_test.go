package main

import "testing"

func TestMatchRule(t *testing.T) {
	rules := []RoutingRule{
		{Reaction: "eyes", Mention: "<@U111>", TeamName: "Ivry"},
		{Reaction: "fire", Mention: "<@U222>", TeamName: "Platform"},
	}

	rule := matchRule("fire", "U222", rules)
	if rule == nil {
		t.Fatal("Expected a matching rule, got nil")
	}
	if rule.TeamName != "Platform" {
		t.Errorf("Expected team 'Platform', got '%s'", rule.TeamName)
	}
}

func TestMatchRuleNoMatch(t *testing.T) {
	rules := []RoutingRule{
		{Reaction: "eyes", Mention: "<@U111>", TeamName: "Ivry"},
	}

	tests := []struct {
		name     string
		reaction string
		userID   string
	}{
		{"unknown reaction", "fire", "U111"},
		{"unknown user", "eyes", "U999"},
		{"reaction is case-sensitive", "Eyes", "U111"},
		{"user is case-sensitive", "eyes", "u111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rule := matchRule(tt.reaction, tt.userID, rules); rule != nil {
				t.Errorf("matchRule(%q, %q) = %+v, want nil", tt.reaction, tt.userID, rule)
			}
		})
	}
}

func TestMatchRuleFirstMatchWins(t *testing.T) {
	rules := []RoutingRule{
		{Reaction: "eyes", Mention: "<@U111>", TeamName: "First"},
		{Reaction: "eyes", Mention: "<@U111>", TeamName: "Second"},
	}

	rule := matchRule("eyes", "U111", rules)
	if rule == nil {
		t.Fatal("Expected a matching rule, got nil")
	}
	if rule.TeamName != "First" {
		t.Errorf("Expected first-listed rule to win, got team '%s'", rule.TeamName)
	}
}

func TestMatchRuleEmptyRules(t *testing.T) {
	if rule := matchRule("eyes", "U111", nil); rule != nil {
		t.Errorf("Expected nil for empty rule list, got %+v", rule)
	}
}
