package winsvc

import "strings"

type eventKind int

const (
	eventInfo eventKind = iota
	eventWarning
	eventError
)

type event struct {
	kind eventKind
	id   uint32
}

// eventFor picks the event log type for a rendered console log line.
func eventFor(line string) event {
	level := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(level, "ERR"), strings.HasPrefix(level, "FTL"), strings.HasPrefix(level, "PNC"):
		return event{kind: eventError, id: 3}
	case strings.HasPrefix(level, "WRN"):
		return event{kind: eventWarning, id: 2}
	default:
		return event{kind: eventInfo, id: 1}
	}
}
