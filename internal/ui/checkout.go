package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
)

var paymentMethods = []string{"credit_card", "paypal", "cash_on_delivery"}

const (
	checkoutFieldStreet = iota
	checkoutFieldCity
	checkoutFieldState
	checkoutFieldZip
	checkoutFieldCount
)

var checkoutLabels = [checkoutFieldCount]string{"Street", "City", "State", "Zip"}

// checkoutState backs the shipping/payment form.
type checkoutState struct {
	inputs    [checkoutFieldCount]textinput.Model
	focus     int
	payment   int // -1 until chosen
	fieldErrs [checkoutFieldCount]string
	payErr    string
	formErr   string
	pending   bool
	placed    bool
	confirmed api.OrderConfirmation
}

func newCheckoutState() checkoutState {
	var s checkoutState
	s.payment = -1
	for i := range s.inputs {
		input := textinput.New()
		input.Placeholder = strings.ToLower(checkoutLabels[i])
		input.CharLimit = 96
		s.inputs[i] = input
	}
	return s
}

func (s *checkoutState) typing() bool {
	return !s.placed
}

func (s *checkoutState) focusCmd() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[s.focus].Focus()
}

func (s *checkoutState) cycle(delta int) tea.Cmd {
	s.focus = (s.focus + delta + checkoutFieldCount) % checkoutFieldCount
	return s.focusCmd()
}

func (s *checkoutState) cyclePayment() {
	s.payment = (s.payment + 1) % len(paymentMethods)
	s.payErr = ""
}

// validate mirrors the client-side checks that must pass before the order
// request is issued.
func (s *checkoutState) validate() bool {
	ok := true
	for i := range s.inputs {
		s.fieldErrs[i] = ""
		if strings.TrimSpace(s.inputs[i].Value()) == "" {
			s.fieldErrs[i] = checkoutLabels[i] + " is required"
			ok = false
		}
	}
	s.payErr = ""
	if s.payment < 0 {
		s.payErr = "Select a payment method"
		ok = false
	}
	return ok
}

func (s *checkoutState) request() api.OrderRequest {
	return api.OrderRequest{
		ShippingAddress: api.ShippingAddress{
			Street: strings.TrimSpace(s.inputs[checkoutFieldStreet].Value()),
			City:   strings.TrimSpace(s.inputs[checkoutFieldCity].Value()),
			State:  strings.TrimSpace(s.inputs[checkoutFieldState].Value()),
			Zip:    strings.TrimSpace(s.inputs[checkoutFieldZip].Value()),
		},
		PaymentMethod: paymentMethods[s.payment],
	}
}

func (m Model) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.checkout

	if s.placed {
		switch msg.String() {
		case "enter", "esc", "b":
			m.currentView = viewProducts
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.currentView = viewCart
		return m, nil

	case "tab", "down":
		return m, s.cycle(1)

	case "shift+tab", "up":
		return m, s.cycle(-1)

	case "ctrl+p":
		s.cyclePayment()
		return m, nil

	case "enter":
		if s.pending {
			return m, nil
		}
		if !s.validate() {
			return m, nil
		}
		s.pending = true
		s.formErr = ""
		return m, m.placeOrderCmd(s.request())
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return m, cmd
}

func (m Model) handleOrderPlaced(msg orderPlacedMsg) (tea.Model, tea.Cmd) {
	s := &m.checkout
	s.pending = false
	if msg.err != nil {
		s.formErr = api.ErrorMessage(msg.err, "Failed to place order")
		return m, nil
	}
	s.placed = true
	s.confirmed = msg.confirmation
	m.notice = "Order placed"
	return m, nil
}

func (m Model) renderCheckout() string {
	s := m.checkout

	if s.placed {
		var b strings.Builder
		b.WriteString(m.styles.Title.Render("Order placed"))
		b.WriteString("\n\n")
		if s.confirmed.ID != "" {
			b.WriteString(m.styles.Text.Render("confirmation: " + s.confirmed.ID))
			b.WriteString("\n")
		}
		if s.confirmed.Total > 0 {
			b.WriteString(m.styles.Text.Render("total: " + formatMoney(s.confirmed.Total)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("press enter to keep shopping"))
		return m.styles.Box.Render(b.String())
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Checkout"))
	b.WriteString("\n\n")

	for i := range s.inputs {
		label := checkoutLabels[i]
		if i == s.focus {
			b.WriteString(m.styles.Accent.Render("› " + label))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(s.inputs[i].View())
		if s.fieldErrs[i] != "" {
			b.WriteString("\n  ")
			b.WriteString(m.styles.Danger.Render(s.fieldErrs[i]))
		}
		b.WriteString("\n\n")
	}

	payment := "none selected (ctrl+p to choose)"
	if s.payment >= 0 {
		payment = paymentMethods[s.payment]
	}
	b.WriteString(m.styles.Muted.Render("  Payment"))
	b.WriteString("\n  ")
	b.WriteString(m.styles.Text.Render(payment))
	if s.payErr != "" {
		b.WriteString("\n  ")
		b.WriteString(m.styles.Danger.Render(s.payErr))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.Accent.Render("order total: " + formatMoney(m.cart.Total())))
	b.WriteString("\n")

	if s.formErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render(s.formErr))
		b.WriteString("\n")
	}
	if s.pending {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("placing order…"))
		b.WriteString("\n")
	}

	return m.styles.Box.Render(b.String())
}
