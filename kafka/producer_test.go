package kafka

import (
	"testing"

	"github.com/Shopify/sarama"
	"github.com/stretchr/testify/assert"
)

func TestToKafkaMessages(t *testing.T) {
	msgs := toKafkaMessages([][]byte{[]byte(`{"billId":"b1"}`), []byte(`{"billId":"b2"}`)}, "BILL_STATUS_TOPIC")

	assert.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, "BILL_STATUS_TOPIC", m.Topic)
	}
	assert.Equal(t, sarama.ByteEncoder(`{"billId":"b2"}`), msgs[1].Value)
}
