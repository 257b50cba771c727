package kafka

import (
	"context"
	"log"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

// Kafka 生产者服务
// 入库成功的信号以JSON事件发往下游（排行榜、通知等消费方）
// 定义接口，方便测试和替换
type ProducerService interface {
	Produce(ctx context.Context, key []byte, event interface{}) error
	Close()
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokerURL, topic string) ProducerService {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{}, // 保证写入负载均衡
	}
	return &kafkaProducer{
		writer: writer,
	}
}

// Produce 序列化事件并写入 Kafka
// 使用trader id作为Key，确保同一交易员的事件进入同一个 Partition (有序性)
func (p *kafkaProducer) Produce(ctx context.Context, key []byte, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: payload,
	})
}

func (p *kafkaProducer) Close() {
	if err := p.writer.Close(); err != nil {
		log.Printf("Error closing kafka writer: %v", err)
	}
}
