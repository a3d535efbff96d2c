package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
)

var sortFields = []string{"", "name", "price"}

// productsState backs the catalog browser.
type productsState struct {
	query      api.ListQuery
	page       api.ProductPage
	cursor     int
	loading    bool
	err        string
	searching  bool
	search     textinput.Model
	categories []string
	catIdx     int
}

func newProductsState() productsState {
	search := textinput.New()
	search.Placeholder = "search products"
	search.CharLimit = 64

	return productsState{
		query:  api.ListQuery{Page: 1},
		search: search,
	}
}

func (s *productsState) selected() (api.Product, bool) {
	if s.cursor < 0 || s.cursor >= len(s.page.Products) {
		return api.Product{}, false
	}
	return s.page.Products[s.cursor], true
}

// rememberCategories folds newly seen categories into the filter cycle.
func (s *productsState) rememberCategories(products []api.Product) {
	seen := make(map[string]bool, len(s.categories))
	for _, c := range s.categories {
		seen[c] = true
	}
	for _, p := range products {
		category := strings.TrimSpace(p.Category)
		if category != "" && !seen[category] {
			seen[category] = true
			s.categories = append(s.categories, category)
		}
	}
}

func (s *productsState) cycleSort() {
	for i, f := range sortFields {
		if f == s.query.SortBy {
			s.query.SortBy = sortFields[(i+1)%len(sortFields)]
			if s.query.SortBy != "" && s.query.SortOrder == "" {
				s.query.SortOrder = "asc"
			}
			return
		}
	}
	s.query.SortBy = sortFields[0]
}

func (s *productsState) cycleOrder() {
	if s.query.SortOrder == "desc" {
		s.query.SortOrder = "asc"
	} else {
		s.query.SortOrder = "desc"
	}
}

func (s *productsState) cycleCategory() {
	if len(s.categories) == 0 {
		return
	}
	// Index 0 means no filter.
	s.catIdx = (s.catIdx + 1) % (len(s.categories) + 1)
	if s.catIdx == 0 {
		s.query.Category = ""
	} else {
		s.query.Category = s.categories[s.catIdx-1]
	}
}

func (m Model) handleProducts(msg productsMsg) (tea.Model, tea.Cmd) {
	if msg.forAdmin {
		return m.handleAdminProducts(msg)
	}

	s := &m.products
	s.loading = false
	if msg.err != nil {
		s.err = api.ErrorMessage(msg.err, "Failed to fetch products")
		return m, nil
	}
	s.err = ""
	s.page = msg.page
	s.query = msg.query
	s.rememberCategories(msg.page.Products)
	s.cursor = clamp(s.cursor, 0, maxIndex(len(msg.page.Products)))
	return m, nil
}

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.products

	if s.searching {
		switch msg.String() {
		case "enter":
			s.searching = false
			s.search.Blur()
			s.query.Search = strings.TrimSpace(s.search.Value())
			s.query.Page = 1
			s.loading = true
			return m, m.fetchProductsCmd(s.query, false)
		case "esc":
			s.searching = false
			s.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "j", "down":
		s.cursor = clamp(s.cursor+1, 0, maxIndex(len(s.page.Products)))
	case "k", "up":
		s.cursor = clamp(s.cursor-1, 0, maxIndex(len(s.page.Products)))
	case "g", "home":
		s.cursor = 0
	case "G", "end":
		s.cursor = maxIndex(len(s.page.Products))

	case "enter":
		if product, ok := s.selected(); ok {
			m.currentView = viewDetail
			m.detail = detailState{product: product, quantity: 1, loading: true}
			return m, m.fetchProductCmd(product.ID)
		}

	case "a":
		if product, ok := s.selected(); ok {
			return m, m.addToCartCmd(product, 1)
		}

	case "n", "right":
		if s.query.Page < s.page.TotalPages {
			s.query.Page++
			s.loading = true
			return m, m.fetchProductsCmd(s.query, false)
		}

	case "p", "left":
		if s.query.Page > 1 {
			s.query.Page--
			s.loading = true
			return m, m.fetchProductsCmd(s.query, false)
		}

	case "/":
		s.searching = true
		s.search.SetValue(s.query.Search)
		return m, s.search.Focus()

	case "s":
		s.cycleSort()
		s.query.Page = 1
		s.loading = true
		return m, m.fetchProductsCmd(s.query, false)

	case "o":
		s.cycleOrder()
		s.query.Page = 1
		s.loading = true
		return m, m.fetchProductsCmd(s.query, false)

	case "f":
		s.cycleCategory()
		s.query.Page = 1
		s.loading = true
		return m, m.fetchProductsCmd(s.query, false)

	case "r":
		s.loading = true
		return m, m.fetchProductsCmd(s.query, false)
	}

	return m, nil
}

func (m Model) renderProducts() string {
	s := m.products

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Products"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(s.filterSummary()))
	b.WriteString("\n\n")

	if s.searching {
		b.WriteString(m.styles.Accent.Render("search: "))
		b.WriteString(s.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case s.loading:
		b.WriteString(m.styles.Muted.Render("Loading products…"))
	case s.err != "":
		b.WriteString(m.styles.Danger.Render("Error: " + s.err))
	case len(s.page.Products) == 0:
		b.WriteString(m.styles.Muted.Render("No products found."))
	default:
		for i, product := range s.page.Products {
			line := fmt.Sprintf("%-30s %10s  %s",
				truncate(product.Name, 30),
				formatMoney(product.Price),
				m.styles.Muted.Render(truncate(product.Category, 16)))
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

func (s productsState) filterSummary() string {
	var parts []string
	if s.query.Search != "" {
		parts = append(parts, "search="+s.query.Search)
	}
	if s.query.Category != "" {
		parts = append(parts, "category="+s.query.Category)
	}
	if s.query.SortBy != "" {
		order := s.query.SortOrder
		if order == "" {
			order = "asc"
		}
		parts = append(parts, "sort="+s.query.SortBy+" "+order)
	}
	if len(parts) == 0 {
		return "all products"
	}
	return strings.Join(parts, " ")
}

func maxIndex(n int) int {
	if n == 0 {
		return 0
	}
	return n - 1
}
