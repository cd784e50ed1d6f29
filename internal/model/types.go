package model

import "time"

type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// SampleFrame is one ingestion result: the colors along each screen edge,
// ordered from the top corner (index 0) to the bottom corner.
type SampleFrame struct {
	Left  []RGB `json:"left"`
	Right []RGB `json:"right"`
}

func (f SampleFrame) BottomLeft() RGB {
	return f.Left[len(f.Left)-1]
}

func (f SampleFrame) BottomRight() RGB {
	return f.Right[len(f.Right)-1]
}

type StripFrame struct {
	CycleID      string `json:"cycle_id"`
	LedCount     int    `json:"led_count"`
	Pixels       []RGB  `json:"pixels"`
	LeftSamples  int    `json:"left_samples"`
	RightSamples int    `json:"right_samples"`
	CreatedAt    int64  `json:"created_at_unix_ms"`
}

type ErrorKind string

const (
	ErrorTransport ErrorKind = "transport"
	ErrorMalformed ErrorKind = "malformed"
	ErrorSchema    ErrorKind = "schema"
	ErrorEmit      ErrorKind = "emit"
)

type Status struct {
	StartedAt         time.Time           `json:"started_at"`
	Cycles            int64               `json:"cycles"`
	Rendered          int64               `json:"rendered"`
	Failures          map[ErrorKind]int64 `json:"failures"`
	LastCycleID       string              `json:"last_cycle_id"`
	LastError         string              `json:"last_error,omitempty"`
	LastErrorKind     ErrorKind           `json:"last_error_kind,omitempty"`
	LastErrorUnixMS   int64               `json:"last_error_unix_ms,omitempty"`
	LatestFrame       *StripFrame         `json:"latest_frame,omitempty"`
	LastUpdatedUnixMS int64               `json:"last_updated_unix_ms"`
}

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt int64       `json:"created_at_unix_ms"`
}
