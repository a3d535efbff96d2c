package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// cartViewState backs the cart page. The line items themselves live in the
// cart store; this only tracks the cursor.
type cartViewState struct {
	cursor int
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cart.Items()
	s := &m.cartView
	s.cursor = clamp(s.cursor, 0, maxIndex(len(items)))

	switch msg.String() {
	case "esc", "b":
		m.currentView = viewProducts
		return m, nil

	case "j", "down":
		s.cursor = clamp(s.cursor+1, 0, maxIndex(len(items)))

	case "k", "up":
		s.cursor = clamp(s.cursor-1, 0, maxIndex(len(items)))

	case "+", "=":
		if s.cursor < len(items) {
			item := items[s.cursor]
			return m, m.updateQuantityCmd(item.Product.ID, item.Quantity+1)
		}

	case "-":
		if s.cursor < len(items) {
			item := items[s.cursor]
			// Quantity 0 removes the line; the store treats them the same.
			return m, m.updateQuantityCmd(item.Product.ID, item.Quantity-1)
		}

	case "d", "delete":
		if s.cursor < len(items) {
			return m, m.removeFromCartCmd(items[s.cursor].Product.ID)
		}

	case "X":
		if len(items) > 0 {
			return m, m.clearCartCmd()
		}

	case "enter", "o":
		if len(items) > 0 {
			m.currentView = viewCheckout
			m.checkout = newCheckoutState()
			return m, m.checkout.focusCmd()
		}

	case "r":
		return m, m.refreshCartCmd()
	}

	return m, nil
}

func (m Model) renderCart() string {
	items := m.cart.Items()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your cart"))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(m.styles.Muted.Render("Your cart is empty. Press b to browse products."))
		return b.String()
	}

	cursor := clamp(m.cartView.cursor, 0, maxIndex(len(items)))
	for i, item := range items {
		line := fmt.Sprintf("%-30s ×%-3d %10s",
			truncate(item.Product.Name, 30),
			item.Quantity,
			formatMoney(item.Product.Price*float64(item.Quantity)))
		if i == cursor {
			b.WriteString(m.styles.Selected.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Accent.Render("total: " + formatMoney(m.cart.Total())))
	if m.cart.Busy() {
		b.WriteString(m.styles.Warning.Render("  updating…"))
	}
	return b.String()
}
