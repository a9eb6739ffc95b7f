package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWrapsPayload(t *testing.T) {
	p := NewAMQPPublisher("amqp://unused", "catalog.events")
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return at }

	msg, err := p.encode(TypeGenreRenamed, GenreRenamedEvent{GenreID: "g1", OldName: "Horror", NewName: "Thriller"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, TypeGenreRenamed, msg.Type)
	assert.Equal(t, at, msg.Timestamp)

	var got struct {
		Type       string            `json:"type"`
		OccurredAt time.Time         `json:"occurred_at"`
		Payload    GenreRenamedEvent `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, TypeGenreRenamed, got.Type)
	assert.True(t, at.Equal(got.OccurredAt))
	assert.Equal(t, "Horror", got.Payload.OldName)
	assert.Equal(t, "Thriller", got.Payload.NewName)
}

func TestEncodeRejectsUnmarshalable(t *testing.T) {
	p := NewAMQPPublisher("amqp://unused", "q")
	_, err := p.encode(TypeMovieWritten, func() {})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), TypeGenreDeleted, GenreDeletedEvent{}))
}
