package pixelboard

import "fmt"

// Redis key pattern helpers
//
// All Redis keys and Pub/Sub channels are namespaced by instance name to
// enable multiple Mural instances to safely coexist on a single Redis
// server.
//
// Key pattern: mural:{instance_name}:{entity}
// Channel pattern: mural:{instance_name}:{event_type}_events

// CanvasKey returns the Redis key holding the canvas state JSON.
// Pattern: mural:{instance_name}:canvas
func CanvasKey(instanceName string) string {
	return fmt.Sprintf("mural:%s:canvas", instanceName)
}

// EventsKey returns the Redis key holding the ordered event log list.
// Pattern: mural:{instance_name}:events
func EventsKey(instanceName string) string {
	return fmt.Sprintf("mural:%s:events", instanceName)
}

// PixelEventsChannel returns the Pub/Sub channel name for live pixel
// events, consumed by viewers watching the canvas change in real time.
// Pattern: mural:{instance_name}:pixel_events
func PixelEventsChannel(instanceName string) string {
	return fmt.Sprintf("mural:%s:pixel_events", instanceName)
}
