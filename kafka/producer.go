package kafka

import (
	"fmt"

	"github.com/Shopify/sarama"
)

type IProducer interface {
	Push(messages [][]byte) error
	Close() error
}

type producer struct {
	topic string
	conn  sarama.SyncProducer
}

func NewProducer(brokers []string, topic string) (IProducer, error) {
	saramaConf := sarama.NewConfig()
	saramaConf.Producer.Return.Successes = true
	saramaConf.Producer.Return.Errors = true
	saramaConf.Producer.RequiredAcks = sarama.WaitForAll

	conn, err := sarama.NewSyncProducer(brokers, saramaConf)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return &producer{
		conn:  conn,
		topic: topic,
	}, nil
}

func (p producer) Push(messages [][]byte) error {
	return p.conn.SendMessages(toKafkaMessages(messages, p.topic))
}

func (p producer) Close() error {
	return p.conn.Close()
}

func toKafkaMessages(messages [][]byte, topic string) []*sarama.ProducerMessage {
	var res []*sarama.ProducerMessage
	for _, message := range messages {
		res = append(res, &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(message),
		})
	}
	return res
}
