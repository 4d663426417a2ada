package model

import "strings"

// Status is the moderation state of a product.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus maps a backend status string to a Status. Matching is
// case-insensitive and total: anything that is not "approved" or
// "rejected" comes back as StatusPending.
func ParseStatus(s string) Status {
	switch strings.ToLower(s) {
	case "approved":
		return StatusApproved
	case "rejected":
		return StatusRejected
	default:
		return StatusPending
	}
}

// String returns the canonical lowercase token for the status.
func (s Status) String() string {
	return string(s)
}
