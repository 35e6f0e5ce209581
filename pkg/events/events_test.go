package events

import (
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

// A client without an open channel must refuse to publish or consume rather
// than panic; main tolerates a missing broker this way.

func TestPublishWithoutChannel(t *testing.T) {
	client := &Client{}

	err := client.PublishProductCreated(map[string]interface{}{"id": "prod-1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	err = client.PublishProductDeleted(map[string]interface{}{"id": "prod-1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestConsumeProductEventsWithoutChannel(t *testing.T) {
	client := &Client{}

	err := client.ConsumeProductEvents(func(msg amqp.Delivery) error { return nil })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestCloseWithoutConnection(t *testing.T) {
	client := &Client{}
	assert.NoError(t, client.Close())
}
