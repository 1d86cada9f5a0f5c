package scaffold

import "strings"

// Score rates an endpoint set on a 0-10 scale using three additive
// heuristics: coverage breadth, GET/POST coverage, and handler-name clarity.
// An empty set short-circuits to 0.
func Score(endpoints []Endpoint) int {
	if len(endpoints) == 0 {
		return 0
	}

	score := 0

	// Coverage breadth.
	switch {
	case len(endpoints) >= 3:
		score += 5
	case len(endpoints) == 2:
		score += 3
	default:
		score += 1
	}

	// CRUD coverage: reward having both read and write entry points.
	hasGet, hasPost := false, false
	for _, ep := range endpoints {
		switch strings.ToUpper(ep.Method) {
		case "GET":
			hasGet = true
		case "POST":
			hasPost = true
		}
	}
	switch {
	case hasGet && hasPost:
		score += 3
	case hasGet || hasPost:
		score += 1
	}

	// Naming clarity: handler names longer than 3 characters read as words.
	clarityCount := 0
	for _, ep := range endpoints {
		if len(ep.FuncName) > 3 {
			clarityCount++
		}
	}
	switch {
	case clarityCount >= len(endpoints):
		score += 2
	case clarityCount > 0:
		score += 1
	}

	return score
}

// Interpretation maps a score to the human-readable quality band shown
// alongside it.
func Interpretation(score int) string {
	switch {
	case score <= 3:
		return "Very basic / needs improvement"
	case score <= 6:
		return "Moderate quality, partially real-life applicable"
	default:
		return "High quality, closely resembles a usable real-world API"
	}
}
