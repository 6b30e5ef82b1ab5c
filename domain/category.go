// Package domain contains core concepts of the meeting planner.
// Aggregates are values: every command returns a new snapshot and leaves
// the receiver untouched, so a failed command never half-applies.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"meetup-lab/errors"
)

// Category classifies a topic. The set is fixed by the community server.
type Category string

const (
	CategoryMarketing Category = "marketing"
	CategoryBranding  Category = "branding"
	CategoryBlogging  Category = "blogging"
	CategoryPinterest Category = "pinterest"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{CategoryMarketing, CategoryBranding, CategoryBlogging, CategoryPinterest}
}

// ParseCategory validates a raw string against the known set.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", errors.NewValidation("category", "must be one of marketing, branding, blogging, pinterest")
}
