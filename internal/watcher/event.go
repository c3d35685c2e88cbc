package watcher

import "time"

// EventType is the kind of change observed on a watched file.
type EventType int

const (
	// EventAdded is emitted when a watched file appears (after settling).
	EventAdded EventType = iota
	// EventModified is emitted when a watched file changes (after settling).
	EventModified
	// EventRemoved is emitted when a watched file is deleted or renamed away.
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventModified:
		return "modified"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes a settled change to a watched file.
type Event struct {
	Type    EventType
	Path    string
	Size    int64
	ModTime time.Time
}
