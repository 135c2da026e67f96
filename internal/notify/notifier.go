package notify

import "time"

// Notifier is the interface stores and services use to surface operation
// outcomes to the dashboard.
type Notifier interface {
	Success(source, message string)
	Error(source, message string)
}

// HubNotifier implements Notifier using the event Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Success(source, message string) {
	n.broadcast(LevelSuccess, source, message)
}

func (n *HubNotifier) Error(source, message string) {
	n.broadcast(LevelError, source, message)
}

func (n *HubNotifier) broadcast(level Level, source, message string) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:     "notice",
		Level:     level,
		Source:    source,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when event streaming is not needed.
type NopNotifier struct{}

func (n *NopNotifier) Success(source, message string) {}
func (n *NopNotifier) Error(source, message string)   {}
