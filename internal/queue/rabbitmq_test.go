package queue

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

func TestHandleMessageAcksOnSuccess(t *testing.T) {
	ack := &fakeAcknowledger{}
	msg := amqp.Delivery{Acknowledger: ack, Body: []byte(`{"type":"email"}`)}

	handleMessage(context.Background(), msg, func(ctx context.Context, message []byte) error {
		return nil
	})

	require.True(t, ack.acked)
	require.False(t, ack.nacked)
}

func TestHandleMessageNacksWithRequeueOnFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	msg := amqp.Delivery{Acknowledger: ack, Body: []byte(`not json`)}

	handleMessage(context.Background(), msg, func(ctx context.Context, message []byte) error {
		return errors.New("parse failed")
	})

	require.False(t, ack.acked)
	require.True(t, ack.nacked)
	require.True(t, ack.requeue, "failed messages must be redelivered, not discarded")
}
