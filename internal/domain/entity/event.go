package entity

type EventType string

const (
	EventLog      EventType = "log"
	EventProgress EventType = "progress"
	EventFound    EventType = "found"
	EventStatus   EventType = "status"
	EventError    EventType = "error"
	EventComplete EventType = "complete"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusError   RunStatus = "error"
)

// Event is one item of a run's progress stream.
type Event struct {
	Type      EventType  `json:"type"`
	Level     Level      `json:"level,omitempty"`
	Message   string     `json:"message,omitempty"`
	Processed *int       `json:"processed,omitempty"`
	Total     *int       `json:"total,omitempty"`
	Game      *GameOffer `json:"game,omitempty"`
	Status    RunStatus  `json:"status,omitempty"`
}

func LogEvent(level Level, message string) Event {
	return Event{Type: EventLog, Level: level, Message: message}
}

func ProgressEvent(processed, total int) Event {
	return Event{Type: EventProgress, Processed: &processed, Total: &total}
}

func FoundEvent(game GameOffer) Event {
	return Event{Type: EventFound, Game: &game}
}

func StatusEvent(status RunStatus) Event {
	return Event{Type: EventStatus, Status: status}
}

func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}

func CompleteEvent() Event {
	return Event{Type: EventComplete}
}
