package storage

import (
	"fmt"
	"time"
)

// Record - one queue message archived by the consumer
type Record struct {
	ID         int
	MessageID  string
	Method     string
	Params     map[string]string
	ReceivedDt time.Time
}

// String representation
func (r *Record) String() string {
	return fmt.Sprintf("id=%d messageID=%s method=%s", r.ID, r.MessageID, r.Method)
}
