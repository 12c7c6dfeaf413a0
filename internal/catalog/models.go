package catalog

import "time"

// Status tracks how far a registered video has progressed through the
// pipeline.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusExtracting Status = "extracting"
	StatusExtracted  Status = "extracted"
	StatusDerived    Status = "derived"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusRegistered,
	StatusExtracting,
	StatusExtracted,
	StatusDerived,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Video is one registered recording and its derived artifacts.
type Video struct {
	ID           int64
	Name         string
	VideoPath    string
	FramesPath   string
	TablePath    string
	AudioPath    string
	FrameCount   int
	FPS          float64
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
