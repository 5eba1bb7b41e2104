package progress

type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusStarted, StatusCompleted:
		return true
	}
	return false
}
