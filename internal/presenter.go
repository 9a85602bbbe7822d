package internal

import "sort"

// SessionListItem is one row of the session list
type SessionListItem struct {
	ID           string
	Label        string
	IsActive     bool
	LastActivity int64 // id of the newest role-bearing message, 0 if none
	MessageCount int
}

// ListSessions orders sessions most recently active first. Sessions without
// messages sort last; ties keep the given order. sessions is not modified.
func ListSessions(sessions []Session, activeID string) []SessionListItem {
	items := make([]SessionListItem, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, SessionListItem{
			ID:           session.ID,
			Label:        session.Label(),
			IsActive:     session.ID == activeID,
			LastActivity: lastActivity(session.Messages),
			MessageCount: len(session.Messages),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastActivity > items[j].LastActivity
	})
	return items
}

func lastActivity(messages []Message) int64 {
	for i := len(messages) - 1; i >= 0; i-- {
		switch messages[i].Role {
		case RoleUser, RoleAssistant:
			return messages[i].ID
		}
	}
	return 0
}
