package internal

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/stan.go"
)

type StanMQClient struct {
	NatsClient *nats.Conn
	StanClient stan.Conn

	channel string
	cluster string
}

func (stanMQ *StanMQClient) String() string {
	return "stan"
}

func (stanMQ *StanMQClient) Channel() string {
	return stanMQ.channel
}

func (stanMQ *StanMQClient) Connect(ctx context.Context, clientName string, args map[string]interface{}) error {
	var ok bool

	var address string

	if address, ok = GetEntry(args, "Address").(string); !ok {
		return errors.New("stanMQ connect: string type assertion failed for Address")
	}

	var cluster string

	if cluster, ok = GetEntry(args, "Cluster").(string); !ok {
		return errors.New("stanMQ connect: string type assertion failed for Cluster")
	}

	stanMQ.cluster = cluster

	var err error

	stanMQ.NatsClient, err = nats.Connect(address)
	if err != nil {
		return fmt.Errorf("stanMQ connect nats: %w", err)
	}

	stanMQ.StanClient, err = stan.Connect(
		cluster,
		clientName,
		stan.NatsConn(stanMQ.NatsClient),
	)
	if err != nil {
		return fmt.Errorf("stanMQ connect stan: %w", err)
	}

	return nil
}

func (stanMQ *StanMQClient) Publish(ctx context.Context, channelName string, data []byte) error {
	return stanMQ.StanClient.Publish(
		channelName,
		data,
	)
}
