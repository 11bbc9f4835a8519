// Package goble implements transport.Transport on top of github.com/go-ble/ble,
// the same BLE stack binding used elsewhere in this dependency tree.
package goble

import (
	"context"
	"fmt"
	"strings"

	"github.com/cornelk/hashmap"
	"github.com/go-ble/ble"
	"github.com/go-ble/ble/darwin"
	"github.com/sirupsen/logrus"

	"github.com/srg/thingy52mcp/internal/groutine"
	"github.com/srg/thingy52mcp/internal/transport"
)

// DeviceFactory creates the platform ble.Device. Overridable in tests.
var DeviceFactory = func() (ble.Device, error) {
	return darwin.NewDevice()
}

const thingyNameHint = "thingy"

// environmentServiceUUID is the vendor UUID advertised by the Thingy:52
// Environment service; Scan matches on it as an alternative to the name hint.
const environmentServiceUUID = "ef680200-9b35-4933-9b10-52ffa9740042"

// Transport implements transport.Transport against a real BLE adapter.
type Transport struct {
	logger *logrus.Logger
}

// New builds a Transport. A nil logger falls back to a default logrus
// instance, matching the rest of this codebase's logging convention.
func New(logger *logrus.Logger) *Transport {
	if logger == nil {
		logger = logrus.New()
	}
	return &Transport{logger: logger}
}

func (t *Transport) Scan(ctx context.Context) ([]transport.DiscoveredPeripheral, error) {
	dev, err := DeviceFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to create BLE device: %w", err)
	}
	ble.SetDefaultDevice(dev)

	seen := make(map[string]transport.DiscoveredPeripheral)
	err = dev.Scan(ctx, true, func(adv ble.Advertisement) {
		if !matchesThingy(adv) {
			return
		}
		addr := adv.Addr().String()
		seen[addr] = transport.DiscoveredPeripheral{
			Address: addr,
			Name:    adv.LocalName(),
			RSSI:    adv.RSSI(),
		}
	})
	if err != nil && err != context.DeadlineExceeded && err != context.Canceled {
		return nil, transport.NormalizeError(err)
	}

	result := make([]transport.DiscoveredPeripheral, 0, len(seen))
	for _, p := range seen {
		result = append(result, p)
	}
	return result, nil
}

func matchesThingy(adv ble.Advertisement) bool {
	if strings.Contains(strings.ToLower(adv.LocalName()), thingyNameHint) {
		return true
	}
	for _, uuid := range adv.Services() {
		if normalizeUUID(uuid.String()) == normalizeUUID(environmentServiceUUID) {
			return true
		}
	}
	return false
}

func (t *Transport) Connect(ctx context.Context, address string) (transport.Link, error) {
	dev, err := DeviceFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to create BLE device: %w", err)
	}
	ble.SetDefaultDevice(dev)

	client, err := ble.Dial(ctx, ble.NewAddr(address))
	if err != nil {
		return nil, transport.NormalizeError(fmt.Errorf("dial %s: %w", address, err))
	}

	profile, err := client.DiscoverProfile(true)
	if err != nil {
		profile, err = client.DiscoverProfile(true)
	}
	if err != nil {
		_ = client.CancelConnection()
		return nil, transport.NormalizeError(fmt.Errorf("discover profile: %w", err))
	}

	link := &Link{
		address: address,
		client:  client,
		chars:   hashmap.New[string, *ble.Characteristic](),
	}
	for _, svc := range profile.Services {
		for _, ch := range svc.Characteristics {
			link.chars.Set(normalizeUUID(ch.UUID.String()), ch)
		}
	}

	if darwinClient, ok := client.(interface{ Disconnected() <-chan struct{} }); ok {
		groutine.Go(context.Background(), "goble-link-monitor", func(monitorCtx context.Context) {
			select {
			case <-darwinClient.Disconnected():
				link.fireLinkLost()
			case <-monitorCtx.Done():
			}
		})
	}

	return link, nil
}

func (t *Transport) Disconnect(l transport.Link) error {
	link, ok := l.(*Link)
	if !ok || link.client == nil {
		return nil
	}
	return transport.NormalizeError(link.client.CancelConnection())
}

func (t *Transport) ReadChar(ctx context.Context, l transport.Link, uuid string) ([]byte, error) {
	link, ok := l.(*Link)
	if !ok {
		return nil, transport.ErrNotConnected
	}
	char, ok := link.findCharacteristic(uuid)
	if !ok {
		return nil, transport.ErrNotFound
	}
	if char.Property&ble.CharRead == 0 {
		return nil, transport.ErrNotPermitted
	}
	data, err := link.client.ReadCharacteristic(char)
	if err != nil {
		return nil, transport.NormalizeError(err)
	}
	return data, nil
}

func (t *Transport) WriteChar(ctx context.Context, l transport.Link, uuid string, data []byte, withResponse bool) error {
	link, ok := l.(*Link)
	if !ok {
		return transport.ErrNotConnected
	}
	char, ok := link.findCharacteristic(uuid)
	if !ok {
		return transport.ErrNotFound
	}
	noRsp := !withResponse
	if err := link.client.WriteCharacteristic(char, data, noRsp); err != nil {
		return transport.NormalizeError(err)
	}
	return nil
}

func (t *Transport) Subscribe(l transport.Link, uuid string, sink func([]byte)) (transport.Subscription, error) {
	link, ok := l.(*Link)
	if !ok {
		return nil, transport.ErrNotConnected
	}
	char, ok := link.findCharacteristic(uuid)
	if !ok {
		return nil, transport.ErrNotFound
	}
	if char.Property&ble.CharNotify == 0 && char.Property&ble.CharIndicate == 0 {
		return nil, transport.ErrNotPermitted
	}
	if err := link.client.Subscribe(char, false, sink); err != nil {
		return nil, transport.NormalizeError(err)
	}
	return &subscription{uuid: uuid, link: link, char: char}, nil
}

func (t *Transport) Unsubscribe(s transport.Subscription) error {
	sub, ok := s.(*subscription)
	if !ok {
		return nil
	}
	if sub.link == nil || sub.link.client == nil {
		return nil
	}
	err1 := sub.link.client.Unsubscribe(sub.char, false)
	if err1 == nil {
		return nil
	}
	err2 := sub.link.client.Unsubscribe(sub.char, true)
	if err2 == nil {
		return nil
	}
	return transport.NormalizeError(fmt.Errorf("unsubscribe %s: notify=%v, indicate=%v", sub.uuid, err1, err2))
}

func (t *Transport) OnLinkLost(l transport.Link, fn func()) {
	link, ok := l.(*Link)
	if !ok {
		return
	}
	link.lostFn = fn
}
