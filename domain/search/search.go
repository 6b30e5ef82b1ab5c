package search

import (
	"strconv"
	"strings"

	"meetup-lab/domain"
)

// Query represents the structured parameters for a topic search.
// It decouples the raw prompt input from the index engine requirements.
type Query struct {
	RawInput string           // The original line typed by the user
	Terms    string           // The actual text to match against title/description
	Category *domain.Category // Optional category restriction
	Limit    int              // Number of results
}

// NewQuery parses a raw string to extract command-line style arguments.
// Example: /find "pinterest boards" --category marketing --limit 5
func NewQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    10, // Default limit
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		// Handle flags like --category marketing or --limit 5
		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "category":
				if c, err := domain.ParseCategory(val); err == nil {
					query.Category = &c
				}
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}

		// If it's not a flag, it's a search term
		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, part)
		}
	}

	query.Terms = strings.Trim(strings.Join(textTerms, " "), `"`)
	return query
}
