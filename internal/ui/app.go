// Package ui provides the Bubble Tea storefront interface: auth forms,
// product browsing, cart, checkout, profile, and the admin panel.
package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
	"github.com/tansen/vitrine/internal/cart"
	"github.com/tansen/vitrine/internal/prefs"
	"github.com/tansen/vitrine/internal/session"
)

// view represents the current active view.
type view int

const (
	viewAuth view = iota
	viewProducts
	viewDetail
	viewCart
	viewCheckout
	viewProfile
	viewAdmin
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Session   *session.Store
	Cart      *cart.Store
	ThemeName string
	PageSize  int
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    *api.Client
	session   *session.Store
	cart      *cart.Store
	prefsPath string
	pageSize  int

	theme       Theme
	styles      Styles
	currentView view
	width       int
	height      int
	ready       bool
	showHelp    bool

	notice string
	alert  string

	auth     authState
	products productsState
	detail   detailState
	cartView cartViewState
	checkout checkoutState
	profile  profileState
	admin    adminState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = ThemeNames()[0]
	}
	theme := GetTheme(themeName)

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		session:   opts.Session,
		cart:      opts.Cart,
		prefsPath: prefsPath,
		pageSize:  pageSize,
		theme:     theme,
		styles:    theme.Styles(),
	}
	m.auth = newAuthState()
	m.products = newProductsState()
	m.checkout = newCheckoutState()
	m.admin = newAdminState()

	if m.session.Snapshot().Authenticated {
		m.currentView = viewProducts
	} else {
		m.currentView = viewAuth
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.currentView == viewProducts {
		return m.fetchProductsCmd(m.productQuery(), false)
	}
	return m.auth.focusCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case loggedOutMsg:
		m.notice = "Signed out"
		m.alert = ""
		m.currentView = viewAuth
		m.auth = newAuthState()
		return m, m.auth.focusCmd()

	case cartChangedMsg:
		m.alert = ""
		return m, nil

	case cartAlertMsg:
		m.alert = msg.err.Error()
		return m, nil

	case productsMsg:
		return m.handleProducts(msg)

	case productDetailMsg:
		return m.handleProductDetail(msg)

	case orderPlacedMsg:
		return m.handleOrderPlaced(msg)

	case profileSavedMsg:
		return m.handleProfileSaved(msg)

	case adminSavedMsg, adminDeletedMsg:
		return m.handleAdminResult(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case viewAuth:
		return m.renderAuth()
	case viewProducts:
		return m.renderProducts()
	case viewDetail:
		return m.renderDetail()
	case viewCart:
		return m.renderCart()
	case viewCheckout:
		return m.renderCheckout()
	case viewProfile:
		return m.renderProfile()
	case viewAdmin:
		return m.renderAdmin()
	default:
		return ""
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	// Views with a focused text input consume keys first.
	if !m.typing() {
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	switch m.currentView {
	case viewAuth:
		return m.handleAuthKey(msg)
	case viewProducts:
		return m.handleProductsKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewCart:
		return m.handleCartKey(msg)
	case viewCheckout:
		return m.handleCheckoutKey(msg)
	case viewProfile:
		return m.handleProfileKey(msg)
	case viewAdmin:
		return m.handleAdminKey(msg)
	}

	return m, nil
}

// handleGlobalKey covers navigation available from any non-typing context.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	snap := m.session.Snapshot()

	switch msg.String() {
	case "q":
		return m, tea.Quit, true

	case "?":
		m.showHelp = true
		return m, nil, true

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageSize: m.pageSize})
		return m, nil, true

	case "b":
		if snap.Authenticated {
			m.currentView = viewProducts
			return m, m.fetchProductsCmd(m.productQuery(), false), true
		}

	case "c":
		if snap.Authenticated {
			m.currentView = viewCart
			m.cartView.cursor = 0
			return m, m.refreshCartCmd(), true
		}

	case "u":
		if snap.Authenticated {
			m.currentView = viewProfile
			m.profile = newProfileState(snap.User)
			return m, m.profile.focusCmd(), true
		}

	case "A":
		if snap.Authenticated {
			m.currentView = viewAdmin
			if snap.User.IsAdmin() {
				return m, m.fetchProductsCmd(api.ListQuery{Page: 1}, true), true
			}
			return m, nil, true
		}

	case "L":
		if snap.Authenticated {
			return m, m.logoutCmd(), true
		}
	}

	return m, nil, false
}

// typing reports whether the current view holds keyboard focus in a text
// input, in which case global single-letter shortcuts must not fire.
func (m Model) typing() bool {
	switch m.currentView {
	case viewAuth:
		return true
	case viewCheckout:
		return m.checkout.typing()
	case viewProfile:
		return true
	case viewProducts:
		return m.products.searching
	case viewAdmin:
		return m.admin.mode == adminModeForm
	default:
		return false
	}
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.auth.applyError(msg.err)
		return m, nil
	}
	m.notice = "Welcome, " + msg.user.Username
	m.alert = ""
	m.currentView = viewProducts
	m.products = newProductsState()
	return m, m.fetchProductsCmd(m.productQuery(), false)
}

func (m Model) productQuery() api.ListQuery {
	query := m.products.query
	if query.Page <= 0 {
		query.Page = 1
	}
	return query
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
