package goble

import (
	"sync"

	"github.com/cornelk/hashmap"
	"github.com/go-ble/ble"
)

// Link wraps a live go-ble client connection. It caches resolved
// characteristics by normalized UUID so repeated read/write/subscribe calls
// do not re-walk the GATT profile. The cache is populated once during
// Connect's service discovery and read concurrently afterward by every
// Session operation, so it uses a lock-free map rather than a mutex-guarded
// one.
type Link struct {
	address string
	client  ble.Client

	chars *hashmap.Map[string, *ble.Characteristic]

	lostOnce sync.Once
	lostFn   func()
}

func (l *Link) Address() string { return l.address }

func (l *Link) findCharacteristic(uuid string) (*ble.Characteristic, bool) {
	return l.chars.Get(normalizeUUID(uuid))
}

func (l *Link) fireLinkLost() {
	l.lostOnce.Do(func() {
		if l.lostFn != nil {
			l.lostFn()
		}
	})
}

// subscription is the handle returned from Transport.Subscribe, identifying
// the characteristic and the link it was taken against so Unsubscribe can
// find its way back to the same go-ble client.
type subscription struct {
	uuid string
	link *Link
	char *ble.Characteristic
}

func (s *subscription) UUID() string { return s.uuid }
