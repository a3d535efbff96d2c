package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
)

type adminMode int

const (
	adminModeList adminMode = iota
	adminModeForm
	adminModeConfirm
)

const (
	adminFieldName = iota
	adminFieldDescription
	adminFieldPrice
	adminFieldCategory
	adminFieldStock
	adminFieldCount
)

var adminLabels = [adminFieldCount]string{"Name", "Description", "Price", "Category", "Stock"}

// adminState backs the product-management panel.
type adminState struct {
	mode    adminMode
	page    api.ProductPage
	query   api.ListQuery
	cursor  int
	loading bool
	err     string

	editing   string // product id under edit; empty means create
	inputs    [adminFieldCount]textinput.Model
	focus     int
	fieldErrs [adminFieldCount]string
	formErr   string
	pending   bool
}

func newAdminState() adminState {
	s := adminState{query: api.ListQuery{Page: 1}}
	for i := range s.inputs {
		input := textinput.New()
		input.Placeholder = strings.ToLower(adminLabels[i])
		input.CharLimit = 256
		s.inputs[i] = input
	}
	return s
}

func (s *adminState) selected() (api.Product, bool) {
	if s.cursor < 0 || s.cursor >= len(s.page.Products) {
		return api.Product{}, false
	}
	return s.page.Products[s.cursor], true
}

func (s *adminState) openForm(product *api.Product) tea.Cmd {
	s.mode = adminModeForm
	s.focus = 0
	s.formErr = ""
	s.pending = false
	for i := range s.fieldErrs {
		s.fieldErrs[i] = ""
	}

	if product == nil {
		s.editing = ""
		for i := range s.inputs {
			s.inputs[i].SetValue("")
		}
	} else {
		s.editing = product.ID
		s.inputs[adminFieldName].SetValue(product.Name)
		s.inputs[adminFieldDescription].SetValue(product.Description)
		s.inputs[adminFieldPrice].SetValue(strconv.FormatFloat(product.Price, 'f', 2, 64))
		s.inputs[adminFieldCategory].SetValue(product.Category)
		s.inputs[adminFieldStock].SetValue(strconv.Itoa(product.Stock))
	}
	return s.focusCmd()
}

func (s *adminState) focusCmd() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[s.focus].Focus()
}

func (s *adminState) cycle(delta int) tea.Cmd {
	s.focus = (s.focus + delta + adminFieldCount) % adminFieldCount
	return s.focusCmd()
}

// validate parses and checks the form, returning the input on success.
func (s *adminState) validate() (api.ProductInput, bool) {
	for i := range s.fieldErrs {
		s.fieldErrs[i] = ""
	}
	ok := true

	name := strings.TrimSpace(s.inputs[adminFieldName].Value())
	if name == "" {
		s.fieldErrs[adminFieldName] = "Name is required"
		ok = false
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(s.inputs[adminFieldPrice].Value()), 64)
	if err != nil || price <= 0 {
		s.fieldErrs[adminFieldPrice] = "Price must be a positive number"
		ok = false
	}

	stock := 0
	if raw := strings.TrimSpace(s.inputs[adminFieldStock].Value()); raw != "" {
		stock, err = strconv.Atoi(raw)
		if err != nil || stock < 0 {
			s.fieldErrs[adminFieldStock] = "Stock must be a whole number"
			ok = false
		}
	}

	if !ok {
		return api.ProductInput{}, false
	}
	return api.ProductInput{
		Name:        name,
		Description: strings.TrimSpace(s.inputs[adminFieldDescription].Value()),
		Price:       price,
		Category:    strings.TrimSpace(s.inputs[adminFieldCategory].Value()),
		Stock:       stock,
	}, true
}

func (m Model) handleAdminProducts(msg productsMsg) (tea.Model, tea.Cmd) {
	s := &m.admin
	s.loading = false
	if msg.err != nil {
		s.err = api.ErrorMessage(msg.err, "Failed to fetch products")
		return m, nil
	}
	s.err = ""
	s.page = msg.page
	s.query = msg.query
	s.cursor = clamp(s.cursor, 0, maxIndex(len(msg.page.Products)))
	return m, nil
}

func (m Model) handleAdminResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.admin

	switch msg := msg.(type) {
	case adminSavedMsg:
		s.pending = false
		if msg.err != nil {
			s.formErr = api.ErrorMessage(msg.err, "Failed to save product")
			return m, nil
		}
		if msg.created {
			m.notice = "Product created: " + msg.product.Name
		} else {
			m.notice = "Product updated: " + msg.product.Name
		}
		s.mode = adminModeList

	case adminDeletedMsg:
		if msg.err != nil {
			s.err = api.ErrorMessage(msg.err, "Failed to delete product")
			s.mode = adminModeList
			return m, nil
		}
		m.notice = "Product deleted"
		s.mode = adminModeList
	}

	s.loading = true
	return m, m.fetchProductsCmd(s.query, true)
}

func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.session.Snapshot().User.IsAdmin() {
		switch msg.String() {
		case "esc", "b":
			m.currentView = viewProducts
		}
		return m, nil
	}

	s := &m.admin
	switch s.mode {
	case adminModeForm:
		return m.handleAdminFormKey(msg)
	case adminModeConfirm:
		return m.handleAdminConfirmKey(msg)
	}

	switch msg.String() {
	case "esc", "b":
		m.currentView = viewProducts
		return m, nil

	case "j", "down":
		s.cursor = clamp(s.cursor+1, 0, maxIndex(len(s.page.Products)))
	case "k", "up":
		s.cursor = clamp(s.cursor-1, 0, maxIndex(len(s.page.Products)))

	case "n", "right":
		if s.query.Page < s.page.TotalPages {
			s.query.Page++
			s.loading = true
			return m, m.fetchProductsCmd(s.query, true)
		}
	case "p", "left":
		if s.query.Page > 1 {
			s.query.Page--
			s.loading = true
			return m, m.fetchProductsCmd(s.query, true)
		}

	case "a":
		return m, s.openForm(nil)

	case "e", "enter":
		if product, ok := s.selected(); ok {
			return m, s.openForm(&product)
		}

	case "d", "delete":
		if _, ok := s.selected(); ok {
			s.mode = adminModeConfirm
		}

	case "r":
		s.loading = true
		return m, m.fetchProductsCmd(s.query, true)
	}

	return m, nil
}

func (m Model) handleAdminFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.admin

	switch msg.String() {
	case "esc":
		s.mode = adminModeList
		return m, nil

	case "tab", "down":
		return m, s.cycle(1)

	case "shift+tab", "up":
		return m, s.cycle(-1)

	case "enter":
		if s.pending {
			return m, nil
		}
		input, ok := s.validate()
		if !ok {
			return m, nil
		}
		s.pending = true
		s.formErr = ""
		if s.editing == "" {
			return m, m.createProductCmd(input)
		}
		return m, m.updateProductCmd(s.editing, input)
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return m, cmd
}

func (m Model) handleAdminConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.admin

	switch msg.String() {
	case "y", "Y":
		if product, ok := s.selected(); ok {
			return m, m.deleteProductCmd(product.ID)
		}
		s.mode = adminModeList
	case "n", "N", "esc":
		s.mode = adminModeList
	}
	return m, nil
}

func (m Model) renderAdmin() string {
	if !m.session.Snapshot().User.IsAdmin() {
		return m.styles.Danger.Render("You do not have permission to access this page.")
	}

	s := m.admin
	switch s.mode {
	case adminModeForm:
		return m.renderAdminForm()
	case adminModeConfirm:
		return m.renderAdminConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Admin · Products"))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(m.styles.Muted.Render("Loading products…"))
	case s.err != "":
		b.WriteString(m.styles.Danger.Render("Error: " + s.err))
	case len(s.page.Products) == 0:
		b.WriteString(m.styles.Muted.Render("No products. Press a to add one."))
	default:
		for i, product := range s.page.Products {
			line := fmt.Sprintf("%-28s %10s %6d  %s",
				truncate(product.Name, 28),
				formatMoney(product.Price),
				product.Stock,
				m.styles.Muted.Render(truncate(product.Category, 14)))
			if i == s.cursor {
				b.WriteString(m.styles.Selected.Render("› " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("page %d of %d", s.query.Page, max(s.page.TotalPages, 1))))
	}

	return b.String()
}

func (m Model) renderAdminForm() string {
	s := m.admin

	var b strings.Builder
	if s.editing == "" {
		b.WriteString(m.styles.Title.Render("New product"))
	} else {
		b.WriteString(m.styles.Title.Render("Edit product"))
	}
	b.WriteString("\n\n")

	for i := range s.inputs {
		label := adminLabels[i]
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

	if s.formErr != "" {
		b.WriteString(m.styles.Danger.Render(s.formErr))
		b.WriteString("\n")
	}
	if s.pending {
		b.WriteString(m.styles.Muted.Render("saving…"))
		b.WriteString("\n")
	}

	return m.styles.Box.Render(b.String())
}

func (m Model) renderAdminConfirm() string {
	product, _ := m.admin.selected()
	text := fmt.Sprintf("Delete %q? (y/n)", product.Name)
	return m.styles.Box.Render(m.styles.Danger.Render(text))
}

func (m Model) adminFooter() string {
	switch m.admin.mode {
	case adminModeForm:
		return "tab next field • enter save • esc cancel"
	case adminModeConfirm:
		return "y confirm delete • n cancel"
	default:
		return "j/k move • a add • e edit • d delete • n/p page • r refresh • esc back"
	}
}
