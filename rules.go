package main

// matchRule scans rules in configured order and returns the first one whose
// reaction and mention both match the event, or nil when none does. The
// mention token is compared against "<@user>" exactly, case-sensitive.
func matchRule(reaction, userID string, rules []RoutingRule) *RoutingRule {
	mention := "<@" + userID + ">"
	for i := range rules {
		if rules[i].Reaction == reaction && rules[i].Mention == mention {
			return &rules[i]
		}
	}
	return nil
}
