// internal/interfaces/errors.go
package interfaces

import (
	"errors"
	"fmt"
)

// ErrCampaignNotFound means the campaign id is unknown to the store.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrNoMetrics means the campaign exists but has no metric samples yet.
// Kept distinct from ErrCampaignNotFound so callers can tell a bad id from
// a campaign that simply has not delivered.
var ErrNoMetrics = errors.New("campaign has no metric samples")

// ErrTemplateNotFound means the ad template id is unknown.
var ErrTemplateNotFound = errors.New("ad template not found")

// ExternalServiceError wraps a failure talking to an external collaborator
// (ads platform, payment processor) with enough context to retry.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// ValidationError reports malformed caller input, such as an out-of-range
// recommendation index.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
