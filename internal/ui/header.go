package ui

import (
	"fmt"
	"strings"
)

func (m Model) renderHeader() string {
	parts := []string{m.styles.Title.Render("VITRINE")}

	snap := m.session.Snapshot()
	if snap.Authenticated {
		who := snap.User.Username
		if snap.User.IsAdmin() {
			who += " (admin)"
		}
		parts = append(parts, m.styles.Text.Render(who))
		parts = append(parts, m.styles.Badge.Render(fmt.Sprintf("cart: %d", m.cart.Count())))
	} else {
		parts = append(parts, m.styles.Muted.Render("not signed in"))
	}

	if snap.Loading || m.cart.Busy() {
		parts = append(parts, m.styles.Warning.Render("…"))
	}

	line := strings.Join(parts, m.styles.Muted.Render("  │  "))

	switch {
	case m.alert != "":
		line += "\n" + m.styles.Danger.Render(m.alert)
	case m.notice != "":
		line += "\n" + m.styles.Success.Render(m.notice)
	}
	return line
}

func (m Model) renderFooter() string {
	var hints string
	switch m.currentView {
	case viewAuth:
		hints = "tab next field • ctrl+s switch login/register • enter submit • ctrl+c quit"
	case viewProducts:
		hints = "j/k move • enter detail • a add to cart • n/p page • / search • s sort • o order • f category • c cart • ? help"
	case viewDetail:
		hints = "+/- quantity • a add to cart • esc back • c cart"
	case viewCart:
		hints = "j/k move • +/- quantity • d remove • X clear • enter checkout • esc back"
	case viewCheckout:
		hints = "tab next field • ctrl+p payment method • enter place order • esc back"
	case viewProfile:
		hints = "tab next field • enter save • esc back"
	case viewAdmin:
		hints = m.adminFooter()
	}
	return m.styles.Help.Render(hints)
}

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"b", "Browse products"},
		{"c", "Cart"},
		{"u", "Profile"},
		{"A", "Admin panel (admin only)"},
		{"L", "Sign out"},
		{"T", "Cycle theme"},
		{"?", "This help"},
		{"q / ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Vitrine keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.Accent.Render(fmt.Sprintf("%-10s", row.key)),
			m.styles.Text.Render(row.desc)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("press any key to close"))
	return m.styles.Box.Render(b.String())
}
