// Package client implements the headless client application runtime.
//
// It wires local storage, backend adapters, the sync service layer, and
// background synchronization into a single process lifecycle driven by
// connectivity and auth events.
package client
