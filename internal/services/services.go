// Package services holds the portal's use cases: intake of public
// applications, reviewer updates with optional notification, and the
// administration of courses, email templates and admin accounts.
package services

import (
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
)

// Refresher tells connected admin dashboards that data changed.
type Refresher interface {
	Broadcast(event string)
}

const (
	EventApplications = "applications"
	EventCourses      = "courses"
	EventEmails       = "emails"
)

type noopRefresher struct{}

func (noopRefresher) Broadcast(string) {}

func refresherOrNoop(r Refresher) Refresher {
	if r == nil {
		return noopRefresher{}
	}
	return r
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// NewSanitizer returns the policy applied to every stored or sent HTML body.
func NewSanitizer() *bluemonday.Policy {
	return bluemonday.UGCPolicy()
}
