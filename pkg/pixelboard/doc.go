// Package pixelboard provides type-safe Go definitions and Redis access
// patterns for the Mural shared pixel canvas. The canvas is a single
// palette-indexed grid held at a fixed Redis key, paired with an append-only
// event log used for audit and replay. All Mural components (tool server,
// HTTP API, CLI) read and mutate the canvas through this package.
//
// All Redis keys and channels are namespaced by instance name so multiple
// Mural instances can safely coexist on a single Redis server.
package pixelboard
