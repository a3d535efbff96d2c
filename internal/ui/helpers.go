package ui

import (
	"fmt"
	"strings"
)

// formatMoney renders a price the way the storefront displays it.
func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// validEmail is the same loose shape check the forms apply before any
// network call; real validation belongs to the backend.
func validEmail(s string) bool {
	trimmed := strings.TrimSpace(s)
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 {
		return false
	}
	return !strings.ContainsAny(trimmed, " \t")
}
