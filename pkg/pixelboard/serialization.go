package pixelboard

import "encoding/json"

// Event log serialization
//
// Events are appended to the Redis list as plain JSON objects. Historic
// writers were not so disciplined: some entries landed as JSON-encoded
// strings containing the object, and a few were string-encoded twice. The
// reader tolerates all three shapes in a single normalization pass and
// discards anything that still isn't a recognized event.

// DecodeEventEntry parses one stored log entry, unwrapping up to two
// layers of string encoding. The second return value is false when the
// entry is malformed or not a recognized event shape; such entries are
// skipped by readers rather than failing the whole log read.
func DecodeEventEntry(raw string) (*Event, bool) {
	payload := []byte(raw)

	// Unwrap string-encoded layers ("\"{...}\"" and the double-encoded
	// variant) before attempting the object parse.
	for i := 0; i < 2; i++ {
		var inner string
		if err := json.Unmarshal(payload, &inner); err != nil {
			break
		}
		payload = []byte(inner)
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, false
	}

	if event.Type.Validate() != nil {
		return nil, false
	}

	return &event, true
}
