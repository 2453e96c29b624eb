package envelope

import (
	"encoding/json"
	"fmt"
)

// Version of the envelope format.
const Version = "1"

// Envelope - JSON packet exchanged over the queue
type Envelope struct {
	Version string            `json:"v"`
	ID      string            `json:"id,omitempty"`
	Method  string            `json:"method"`
	Params  map[string]string `json:"params"`
}

// JSON - convert struct to json
func (e *Envelope) JSON() (string, error) {
	e.Version = Version
	bin, err := json.Marshal(e)
	return string(bin), err
}

// FromJSON - convert json to struct
func (e *Envelope) FromJSON(jsonString string) error {
	jsonBytes := []byte(jsonString)
	return json.Unmarshal(jsonBytes, e)
}

// String representation
func (e *Envelope) String() string {
	return fmt.Sprintf("id=%s method=%s params=%s", e.ID, e.Method, e.Params)
}
