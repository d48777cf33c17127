package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"
)

// PartialWriteQueue is the durable queue partial-write events go to.
const PartialWriteQueue = "dualwrite.partial"

// Publisher publishes domain events to RabbitMQ.  Each publish dials its
// own connection; events are rare enough that pooling is not worth it.
// Errors are returned to the caller, which decides whether to log them.
type Publisher struct {
    url string
    log logrus.FieldLogger
}

func NewPublisher(url string, log logrus.FieldLogger) *Publisher {
    return &Publisher{url: url, log: log}
}

// PublishPartialWrite sends ev to the dualwrite.partial queue as a
// persistent JSON message.
func (p *Publisher) PublishPartialWrite(ctx context.Context, ev PartialWriteEvent) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so audit records survive broker restarts.
    if _, err := ch.QueueDeclare(PartialWriteQueue, true, false, false, false, nil); err != nil {
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", PartialWriteQueue, false, false, pub); err != nil {
        return err
    }
    p.log.WithFields(logrus.Fields{"entity": ev.Entity, "relational_id": ev.RelationalID}).Debug("partial write event published")
    return nil
}
