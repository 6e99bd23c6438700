// Package source discovers publishable candidates from configured origins,
// either RSS/Atom feeds or HTML index pages.
package source

import (
	"context"
	"fmt"

	"github.com/mokhberai/mokhber/internal/fetch"
	"github.com/mokhberai/mokhber/internal/model"
)

// Adapter lists the current candidates one origin offers for a group.
// Discovery returns everything visible; filtering against history and
// selection happen downstream.
type Adapter interface {
	Kind() model.AdapterKind
	Discover(ctx context.Context, group model.SourceGroup, origin string) ([]model.Candidate, error)
}

// ForGroup returns the adapter matching the group's configuration.
func ForGroup(group model.SourceGroup, client *fetch.Client) (Adapter, error) {
	switch group.Adapter {
	case model.AdapterFeed:
		return NewFeedAdapter(client), nil
	case model.AdapterPage:
		return NewPageAdapter(client), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q for group %q", group.Adapter, group.Name)
	}
}
