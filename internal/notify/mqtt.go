// Package notify publishes attendance activity over MQTT so live dashboards
// at the venue can subscribe to a per-event topic.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// AttendanceEvent is the payload published on attendance/<event_id>.
type AttendanceEvent struct {
	Action        string    `json:"action"` // "checkin" or "checkout"
	EventID       int       `json:"event_id"`
	OccurrenceID  int       `json:"occurrence_id"`
	ParticipantID int       `json:"participant_id"`
	At            time.Time `json:"at"`
}

type Publisher struct {
	client mqtt.Client
}

// NewPublisher connects to the broker. A nil *Publisher is a valid no-op
// publisher, so callers can skip the broker entirely when unconfigured.
func NewPublisher(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

// PublishAttendance sends the event on its per-event topic. Publishing is
// best effort: a broker failure is logged, never surfaced to the request.
func (p *Publisher) PublishAttendance(ev AttendanceEvent) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal attendance event")
		return
	}
	topic := fmt.Sprintf("attendance/%d", ev.EventID)
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Warn().Err(token.Error()).Str("topic", topic).Msg("failed to publish attendance event")
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.client.Disconnect(250)
}
