package history

import "time"

// Kind identifies what produced a record.
type Kind string

const (
	KindStitch Kind = "stitch"
	KindGIF    Kind = "gif"
)

// Status is the terminal state of a render.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record is one completed or failed render.
type Record struct {
	ID           int64
	Kind         Kind
	SourceDir    string
	Pattern      string
	Output       string
	FPS          int
	FrameCount   int
	Args         string
	Status       Status
	ErrorMessage string
	Duration     time.Duration
	CreatedAt    time.Time
}
