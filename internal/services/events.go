package services

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// Routing keys of catalog events.
const (
	EventProjectCreated = "project.created"
	EventProjectUpdated = "project.updated"
	EventProjectDeleted = "project.deleted"
	EventProjectLiked   = "project.liked"
	EventProjectUnliked = "project.unliked"
)

// EventPublisher sends an already encoded event. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProjectEvent is the JSON payload of every catalog event.
type ProjectEvent struct {
	ProjectID uint      `json:"projectId"`
	AccountID string    `json:"accountId"`
	At        time.Time `json:"at"`
	Title     string    `json:"title,omitempty"`
}

// publishEvent is fire-and-forget: failures are logged and never returned.
func publishEvent(pub EventPublisher, routingKey string, event ProjectEvent) {
	if pub == nil {
		log.Debug().Str("event", routingKey).Msg("no event publisher configured, skipping")
		return
	}
	event.At = time.Now().UTC()
	body, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Str("event", routingKey).Msg("failed to marshal event")
		return
	}
	if err := pub.Publish(routingKey, body); err != nil {
		log.Warn().Err(err).Str("event", routingKey).Uint("project_id", event.ProjectID).Msg("failed to publish event")
	}
}
