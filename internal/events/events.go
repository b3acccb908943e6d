package events

import "github.com/lojf/kindernet/internal/models"

// OnApplied is called after the store applies an action, outside the store
// lock, with the action kind and the resulting snapshot. Subscribers set it
// at startup; the reporting projection is the usual one.
var OnApplied func(kind string, st models.State)
