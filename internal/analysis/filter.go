// Package analysis implements the pure computations behind the dashboard:
// selection filtering, aggregate statistics, and point-to-district
// attribution. Everything here is a function of its inputs; no state is
// kept between calls.
package analysis

import (
	"github.com/hsgill/go-stubble-watch/internal/models"
)

// Filter returns the events matching sel as an order-preserving
// subsequence. An empty district or year set places no constraint on that
// dimension; when both sets are non-empty they apply conjunctively. The
// input slice is never modified, and a fully unconstrained selection
// returns it as-is.
func Filter(events []models.FireEvent, sel models.Selection) []models.FireEvent {
	if len(sel.Districts) == 0 && len(sel.Years) == 0 {
		return events
	}
	out := make([]models.FireEvent, 0, len(events))
	for i := range events {
		if sel.Matches(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}
