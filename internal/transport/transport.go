// Package transport defines the narrow BLE operation surface Session drives:
// scan, connect, disconnect, characteristic read/write, and
// subscribe/unsubscribe to notifications. Session owns mutual exclusion;
// Transport implementations do not serialize their own calls.
package transport

import (
	"context"
	"time"
)

// DiscoveredPeripheral is a single scan result.
type DiscoveredPeripheral struct {
	Address string
	Name    string
	RSSI    int
}

// Link identifies a connected peripheral. Implementations embed whatever
// handle their backend needs; Session treats it opaquely.
type Link interface {
	Address() string
}

// Subscription is returned by Subscribe and passed back to Unsubscribe.
type Subscription interface {
	UUID() string
}

// Transport is the BLE operation surface. Every method may block on the
// underlying OS BLE stack and must honor ctx cancellation/deadline.
type Transport interface {
	// Scan discovers peripherals for the duration of ctx's deadline. It
	// filters to peripherals advertising a name containing "Thingy" or
	// advertising the Environment Service UUID, and dedupes by address.
	Scan(ctx context.Context) ([]DiscoveredPeripheral, error)

	// Connect performs service discovery before returning.
	Connect(ctx context.Context, address string) (Link, error)

	// Disconnect is idempotent on an already-closed link.
	Disconnect(link Link) error

	// ReadChar fails with ErrNotPermitted if the characteristic does not
	// support direct reads; callers fall back to notification-based reads.
	ReadChar(ctx context.Context, link Link, uuid string) ([]byte, error)

	// WriteChar writes data to uuid, with or without response.
	WriteChar(ctx context.Context, link Link, uuid string, data []byte, withResponse bool) error

	// Subscribe delivers notification payloads to sink until Unsubscribe is
	// called. sink must not block.
	Subscribe(link Link, uuid string, sink func([]byte)) (Subscription, error)

	// Unsubscribe is idempotent.
	Unsubscribe(sub Subscription) error

	// OnLinkLost registers a callback invoked (at most once per link) when
	// the underlying stack reports an asynchronous disconnect.
	OnLinkLost(link Link, fn func())
}

// DefaultNotificationTimeout is the per-characteristic wait used by the
// notification-based read pattern when the caller does not override it.
const DefaultNotificationTimeout = 5 * time.Second
