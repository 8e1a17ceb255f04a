package valueobjects

import "fmt"

// TicketStatus is a free label; any status may follow any other.
type TicketStatus string

const (
	StatusOpen   TicketStatus = "open"
	StatusClosed TicketStatus = "closed"
)

// NewTicketStatus parses s, defaulting an empty value to StatusOpen.
func NewTicketStatus(s string) (TicketStatus, error) {
	switch ts := TicketStatus(s); ts {
	case "":
		return StatusOpen, nil
	case StatusOpen, StatusClosed:
		return ts, nil
	default:
		return "", fmt.Errorf("invalid ticket status: %q", s)
	}
}

func (ts TicketStatus) String() string { return string(ts) }

func (ts TicketStatus) IsValid() bool { return ts == StatusOpen || ts == StatusClosed }

func (ts TicketStatus) IsOpen() bool { return ts == StatusOpen }

func (ts TicketStatus) IsClosed() bool { return ts == StatusClosed }
