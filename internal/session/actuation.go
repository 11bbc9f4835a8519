package session

import (
	"context"

	"github.com/srg/thingy52mcp/internal/codec"
)

// SetLED encodes cmd and writes it to the LED characteristic. LED writes
// use write-without-response, per this firmware's actuation contract; no
// confirmation payload is expected.
func (s *Session) SetLED(ctx context.Context, cmd codec.LedCommand) error {
	payload, err := codec.EncodeLED(cmd)
	if err != nil {
		return err
	}
	entry, lookupErr := s.lookup("led")
	if lookupErr != nil {
		return lookupErr
	}
	return s.actuate(ctx, entry.CharID, payload, false)
}

// PlaySound encodes cmd and writes it to the speaker config characteristic,
// also write-without-response.
func (s *Session) PlaySound(ctx context.Context, cmd codec.SoundCommand) error {
	payload, err := codec.EncodeSound(cmd)
	if err != nil {
		return err
	}
	entry, lookupErr := s.lookup("speaker_config")
	if lookupErr != nil {
		return lookupErr
	}
	return s.actuate(ctx, entry.CharID, payload, false)
}
