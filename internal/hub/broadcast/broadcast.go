// Package broadcast fans freshly rebuilt checklist state out to real-time
// subscribers. The transport is publish-only: delivery is best-effort and
// never blocks the cache write that already happened.
package broadcast

import (
	"context"
	"fmt"
	"time"

	"hrhub/internal/event"
	"hrhub/internal/hub/checklist"
)

// Update is the document pushed to every channel scope.
type Update struct {
	EventType        event.Type        `json:"event_type"`
	EmployeeID       *int64            `json:"employee_id"`
	Country          string            `json:"country"`
	Employee         map[string]any    `json:"employee"`
	ChecklistSummary checklist.Summary `json:"checklist_summary"`
	Timestamp        time.Time         `json:"timestamp"`
}

// Channels returns the channel scopes this update targets: the country-wide
// employee feed, the country's checklist feed, and, when an employee is
// identified, that employee's own channel.
func (u Update) Channels() []string {
	channels := []string{
		fmt.Sprintf("employees.%s", u.Country),
		fmt.Sprintf("checklists.%s", u.Country),
	}
	if u.EmployeeID != nil {
		channels = append(channels, fmt.Sprintf("employees.%s.%d", u.Country, *u.EmployeeID))
	}
	return channels
}

// Broadcaster publishes an update to all of its channel scopes.
type Broadcaster interface {
	Broadcast(ctx context.Context, u Update) error
}
