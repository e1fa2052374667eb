package api

import "encoding/json"

// Envelope is the uniform wrapper the backend puts around every payload.
// Callers unwrap Data.
type Envelope struct {
	Timestamp string          `json:"timestamp"`
	Status    int             `json:"status"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Error     string          `json:"error,omitempty"`
	Path      string          `json:"path,omitempty"`
}

func unwrap(body []byte, out interface{}) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
