package internal

import "testing"

func TestListSessions(t *testing.T) {
	sessions := []Session{
		{ID: "empty-1", Messages: []Message{}},
		{ID: "old", Name: "Old", Messages: []Message{{ID: 100, Role: RoleUser}}},
		{ID: "new", Messages: []Message{{ID: 100, Role: RoleUser}, {ID: 300, Role: RoleAssistant}}},
		{ID: "empty-2", Messages: []Message{}},
		{ID: "tie", Messages: []Message{{ID: 100, Role: RoleAssistant}}},
	}

	items := ListSessions(sessions, "old")

	wantOrder := []string{"new", "old", "tie", "empty-1", "empty-2"}
	for i, id := range wantOrder {
		if items[i].ID != id {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ID, id)
		}
	}

	for _, item := range items {
		if item.IsActive != (item.ID == "old") {
			t.Errorf("%s IsActive = %v", item.ID, item.IsActive)
		}
	}
	if items[0].LastActivity != 300 || items[0].MessageCount != 2 {
		t.Errorf("new = %+v", items[0])
	}
	if items[1].Label != "Old" || items[0].Label != UntitledSessionLabel {
		t.Errorf("labels = %q, %q", items[1].Label, items[0].Label)
	}
	if sessions[0].ID != "empty-1" {
		t.Error("ListSessions() reordered its input")
	}
}

func TestListSessions_IgnoresRolelessMessages(t *testing.T) {
	sessions := []Session{
		{ID: "a", Messages: []Message{{ID: 10, Role: RoleUser}, {ID: 900}}},
		{ID: "b", Messages: []Message{{ID: 20, Role: RoleUser}}},
	}

	items := ListSessions(sessions, "")
	if items[0].ID != "b" || items[1].LastActivity != 10 {
		t.Errorf("items = %+v", items)
	}
}
