package session

import (
	"context"
	"time"

	"github.com/srg/thingy52mcp/internal/codec"
	"github.com/srg/thingy52mcp/internal/transport"
)

// MotionFrequencies configures the firmware's per-output update rates on
// the motion-configuration characteristic. Zero values fall back to the
// defaults below.
type MotionFrequencies struct {
	StepCounterMs int
	TempCompMs    int
	MagFieldMs    int
	QuaternionMs  int
	EulerMs       int
	RotationMs    int
	HeadingMs     int
	GravityMs     int
}

const defaultMotionFrequencyMs = 100

func (f MotionFrequencies) orDefaults() MotionFrequencies {
	fill := func(v int) int {
		if v <= 0 {
			return defaultMotionFrequencyMs
		}
		return v
	}
	return MotionFrequencies{
		StepCounterMs: fill(f.StepCounterMs),
		TempCompMs:    fill(f.TempCompMs),
		MagFieldMs:    fill(f.MagFieldMs),
		QuaternionMs:  fill(f.QuaternionMs),
		EulerMs:       fill(f.EulerMs),
		RotationMs:    fill(f.RotationMs),
		HeadingMs:     fill(f.HeadingMs),
		GravityMs:     fill(f.GravityMs),
	}
}

func encodeMotionConfig(f MotionFrequencies) []byte {
	put16 := func(data []byte, offset, v int) {
		data[offset] = byte(v)
		data[offset+1] = byte(v >> 8)
	}
	data := make([]byte, 16)
	put16(data, 0, f.StepCounterMs)
	put16(data, 2, f.TempCompMs)
	put16(data, 4, f.MagFieldMs)
	put16(data, 6, f.QuaternionMs)
	put16(data, 8, f.EulerMs)
	put16(data, 10, f.RotationMs)
	put16(data, 12, f.HeadingMs)
	put16(data, 14, f.GravityMs)
	return data
}

// ConfigureMotion is idempotent: writing the same configuration twice is
// harmless, and it marks motion as configured for the auto-configure-on-
// first-use policy the advanced motion reads rely on.
func (s *Session) ConfigureMotion(ctx context.Context, freq MotionFrequencies) error {
	entry, err := s.lookup("motion_config")
	if err != nil {
		return err
	}
	payload := encodeMotionConfig(freq.orDefaults())
	if err := s.actuate(ctx, entry.CharID, payload, true); err != nil {
		return err
	}
	s.motionMu.Lock()
	s.motionConfigured = true
	s.motionMu.Unlock()
	return nil
}

// ensureMotionConfigured implements the auto-configure-on-first-use policy:
// a read of an advanced motion characteristic configures motion with
// defaults if it has not been configured yet, rather than returning
// NotConfigured. This repository picks that policy because it is the one
// that makes a cold read_euler_angles/read_heading/etc. call succeed
// without a separate prerequisite tool call, which is what a single MCP
// client round-trip expects.
func (s *Session) ensureMotionConfigured(ctx context.Context) error {
	s.motionMu.Lock()
	configured := s.motionConfigured
	s.motionMu.Unlock()
	if configured {
		return nil
	}
	return s.ConfigureMotion(ctx, MotionFrequencies{})
}

func (s *Session) readMotion(ctx context.Context, name string, requiresConfig bool) ([]byte, string, error) {
	if requiresConfig {
		if err := s.ensureMotionConfigured(ctx); err != nil {
			return nil, "", err
		}
	}
	entry, err := s.lookup(name)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.readWithRetry(ctx, func() ([]byte, error) {
		return s.notifyRead(ctx, entry.CharID, transport.DefaultNotificationTimeout)
	})
	return payload, entry.CharID, err
}

func (s *Session) ReadQuaternion(ctx context.Context) (codec.Quaternion, error) {
	payload, uuid, err := s.readMotion(ctx, "quaternion", true)
	if err != nil {
		return codec.Quaternion{}, err
	}
	r, decErr := codec.DecodeQuaternion(payload)
	if decErr != nil {
		return codec.Quaternion{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadEuler(ctx context.Context) (codec.Euler, error) {
	payload, uuid, err := s.readMotion(ctx, "euler", true)
	if err != nil {
		return codec.Euler{}, err
	}
	r, decErr := codec.DecodeEuler(payload)
	if decErr != nil {
		return codec.Euler{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadHeading(ctx context.Context) (codec.Heading, error) {
	payload, uuid, err := s.readMotion(ctx, "heading", true)
	if err != nil {
		return codec.Heading{}, err
	}
	r, decErr := codec.DecodeHeading(payload)
	if decErr != nil {
		return codec.Heading{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadOrientation(ctx context.Context) (codec.Orientation, error) {
	payload, uuid, err := s.readMotion(ctx, "orientation", true)
	if err != nil {
		return codec.Orientation{}, err
	}
	r, decErr := codec.DecodeOrientation(payload)
	if decErr != nil {
		return codec.Orientation{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadRawMotion(ctx context.Context) (codec.RawMotion, error) {
	payload, uuid, err := s.readMotion(ctx, "raw_motion", true)
	if err != nil {
		return codec.RawMotion{}, err
	}
	r, decErr := codec.DecodeRawMotion(payload)
	if decErr != nil {
		return codec.RawMotion{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

func (s *Session) ReadStepCount(ctx context.Context) (codec.StepCount, error) {
	payload, uuid, err := s.readMotion(ctx, "step_counter", true)
	if err != nil {
		return codec.StepCount{}, err
	}
	r, decErr := codec.DecodeStepCount(payload)
	if decErr != nil {
		return codec.StepCount{}, asMalformed(uuid, decErr)
	}
	return r, nil
}

// ReadTapEvent is the only read that waits for the caller's timeout rather
// than DefaultNotificationTimeout: it returns the first tap notification
// that arrives within timeout, and it is not retried when the wait times
// out.
func (s *Session) ReadTapEvent(ctx context.Context, timeout time.Duration) (codec.TapEvent, error) {
	entry, err := s.lookup("tap")
	if err != nil {
		return codec.TapEvent{}, err
	}
	payload, err := s.notifyRead(ctx, entry.CharID, timeout)
	if err != nil {
		return codec.TapEvent{}, err
	}
	r, decErr := codec.DecodeTapEvent(payload)
	if decErr != nil {
		return codec.TapEvent{}, asMalformed(entry.CharID, decErr)
	}
	return r, nil
}
