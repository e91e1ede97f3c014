// Package natsbus provides an embedded NATS server as the addlist.PubSub
// backend, so widget events fan out to every subscriber in the process and to
// any external NATS client attached to the server.
package natsbus

import (
	"context"
	"fmt"

	"github.com/delaneyj/toolbelt/embeddednats"
	"github.com/nats-io/nats.go"
	"github.com/ryanhamamura/addlist"
)

// Bus implements addlist.PubSub over core NATS subjects.
type Bus struct {
	server *embeddednats.Server
	nc     *nats.Conn
}

// New starts an embedded NATS server storing its data in dataDir and connects
// a client to it. The server shuts down when ctx is cancelled or on Close.
func New(ctx context.Context, dataDir string) (*Bus, error) {
	ns, err := embeddednats.New(ctx, embeddednats.WithDirectory(dataDir))
	if err != nil {
		return nil, fmt.Errorf("natsbus: start server: %w", err)
	}
	ns.WaitForServer()

	nc, err := ns.Client()
	if err != nil {
		ns.Close()
		return nil, fmt.Errorf("natsbus: connect client: %w", err)
	}
	return &Bus{server: ns, nc: nc}, nil
}

// Publish sends data on subject.
func (b *Bus) Publish(subject string, data []byte) error {
	return b.nc.Publish(subject, data)
}

// Subscribe delivers every message on subject to handler.
func (b *Bus) Subscribe(subject string, handler func(data []byte)) (addlist.Subscription, error) {
	sub, err := b.nc.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("natsbus: subscribe %q: %w", subject, err)
	}
	return sub, nil
}

// Flush blocks until the server has processed everything published so far.
func (b *Bus) Flush() error {
	return b.nc.Flush()
}

// Close drains the client connection and shuts down the embedded server.
func (b *Bus) Close() error {
	b.nc.Close()
	return b.server.Close()
}

var _ addlist.PubSub = (*Bus)(nil)
