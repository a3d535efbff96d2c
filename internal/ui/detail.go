package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
)

// detailState backs the single-product view.
type detailState struct {
	product  api.Product
	quantity int
	loading  bool
	err      string
	added    bool
}

func (m Model) handleProductDetail(msg productDetailMsg) (tea.Model, tea.Cmd) {
	s := &m.detail
	s.loading = false
	if msg.err != nil {
		s.err = api.ErrorMessage(msg.err, "Failed to fetch product")
		return m, nil
	}
	s.err = ""
	s.product = msg.product
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.detail

	switch msg.String() {
	case "esc":
		m.currentView = viewProducts
		return m, nil

	case "+", "=":
		s.quantity++

	case "-":
		if s.quantity > 1 {
			s.quantity--
		}

	case "a", "enter":
		if s.product.ID != "" {
			s.added = true
			return m, m.addToCartCmd(s.product, s.quantity)
		}
	}

	return m, nil
}

func (m Model) renderDetail() string {
	s := m.detail

	if s.loading {
		return m.styles.Muted.Render("Loading product…")
	}
	if s.err != "" {
		return m.styles.Danger.Render("Error: " + s.err)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(s.product.Name))
	b.WriteString("\n\n")
	if s.product.Description != "" {
		b.WriteString(m.styles.Text.Render(s.product.Description))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Accent.Render(formatMoney(s.product.Price)))
	if s.product.Category != "" {
		b.WriteString(m.styles.Muted.Render("  ·  " + s.product.Category))
	}
	if s.product.Stock > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  ·  %d in stock", s.product.Stock)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render(fmt.Sprintf("quantity: %d", s.quantity)))
	if s.added {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Success.Render("Added to cart"))
	}

	return m.styles.Box.Render(b.String())
}
