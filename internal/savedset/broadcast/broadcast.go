// Package broadcast carries saved set change events between processes.
package broadcast

import (
	"encoding/json"
	"fmt"

	"github.com/cuongbtq/jobboard/internal/savedset"
)

// DefaultChannel is the pub/sub channel or exchange name used when none is configured
const DefaultChannel = "saved-set-events"

const contentType = "application/json"

func encodeEvent(e savedset.Event) ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return body, nil
}

func decodeEvent(body []byte) (savedset.Event, error) {
	var e savedset.Event
	if err := json.Unmarshal(body, &e); err != nil {
		return savedset.Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if e.Key == "" || e.Origin == "" {
		return savedset.Event{}, fmt.Errorf("failed to decode event: key and origin are required")
	}
	return e, nil
}
