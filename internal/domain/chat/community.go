package chat

import (
	"context"
	"strings"
)

// Target is a single addressable broadcast destination inside a community.
type Target struct {
	ID   int64
	Name string
}

// Community is a group of members with one or more broadcast targets.
// Communities are owned and enumerated by the transport side; this package
// only defines how one is addressed.
type Community struct {
	ID      int64
	Title   string
	Targets []Target
}

// BroadcastTarget picks the community's preferred announcement destination:
// the target named "general" if one exists, else the first target.
// ok is false when the community has no targets at all.
func (c Community) BroadcastTarget() (Target, bool) {
	for _, t := range c.Targets {
		if strings.EqualFold(t.Name, "general") {
			return t, true
		}
	}
	if len(c.Targets) > 0 {
		return c.Targets[0], true
	}
	return Target{}, false
}

// Directory enumerates the communities known to the bot.
type Directory interface {
	Communities(ctx context.Context) ([]Community, error)
	Register(ctx context.Context, c Community) error
}
