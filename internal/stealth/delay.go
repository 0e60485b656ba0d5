package stealth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// DelayProfile names a jitter range applied before each outgoing request.
type DelayProfile string

const (
	ProfileOff        DelayProfile = "off"
	ProfileCautious   DelayProfile = "cautious"
	ProfileNormal     DelayProfile = "normal"
	ProfileAggressive DelayProfile = "aggressive"
)

// ParseDelayProfile accepts the profile names; "" means normal.
func ParseDelayProfile(s string) (DelayProfile, error) {
	switch p := DelayProfile(s); p {
	case "":
		return ProfileNormal, nil
	case ProfileOff, ProfileCautious, ProfileNormal, ProfileAggressive:
		return p, nil
	}
	return "", fmt.Errorf("unknown delay profile %q", s)
}

// Jitter sleeps a random duration in [Min, Max).
type Jitter struct {
	Min time.Duration
	Max time.Duration
}

// NewJitter returns the range for profile, or nil for ProfileOff.
func NewJitter(profile DelayProfile) *Jitter {
	switch profile {
	case ProfileOff:
		return nil
	case ProfileCautious:
		return &Jitter{Min: 2 * time.Second, Max: 5 * time.Second}
	case ProfileAggressive:
		return &Jitter{Min: 100 * time.Millisecond, Max: 400 * time.Millisecond}
	default:
		return &Jitter{Min: 300 * time.Millisecond, Max: 1200 * time.Millisecond}
	}
}

// Wait blocks for one draw or until ctx is done.
func (j *Jitter) Wait(ctx context.Context) error {
	t := time.NewTimer(j.Draw())
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Jitter) Draw() time.Duration {
	if j.Min >= j.Max {
		return j.Min
	}
	return j.Min + time.Duration(rand.Int64N(int64(j.Max-j.Min)))
}
