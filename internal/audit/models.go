// Package audit records screening outcomes to an append-only trail. Events
// are transport-agnostic so stores and sinks can fan out.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded on the trail.
const (
	ActionCaseScreened = "case.screened"
)

// Event captures one screening outcome for the compliance trail.
type Event struct {
	Timestamp time.Time
	CaseID    uuid.UUID
	Subject   string
	Action    string
	Decision  string
	Score     int
	Reason    string
}
