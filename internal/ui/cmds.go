package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
)

// Messages

type authDoneMsg struct {
	user api.User
	err  error
}

type loggedOutMsg struct{}

// cartChangedMsg fires after any cart store operation so views re-read the
// snapshot. The store already holds the refetched state by the time this
// message is delivered.
type cartChangedMsg struct{}

// cartAlertMsg carries the one cart failure the store surfaces to callers.
type cartAlertMsg struct{ err error }

type productsMsg struct {
	page     api.ProductPage
	query    api.ListQuery
	forAdmin bool
	err      error
}

type productDetailMsg struct {
	product api.Product
	err     error
}

type orderPlacedMsg struct {
	confirmation api.OrderConfirmation
	err          error
}

type profileSavedMsg struct {
	user api.User
	err  error
}

type adminSavedMsg struct {
	product api.Product
	created bool
	err     error
}

type adminDeletedMsg struct{ err error }

// Commands

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.Login(m.ctx, email, password)
		return authDoneMsg{user: user, err: err}
	}
}

func (m Model) registerCmd(username, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.Register(m.ctx, username, email, password)
		return authDoneMsg{user: user, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		m.session.Logout()
		return loggedOutMsg{}
	}
}

func (m Model) refreshCartCmd() tea.Cmd {
	return func() tea.Msg {
		m.cart.Refresh(m.ctx)
		return cartChangedMsg{}
	}
}

func (m Model) addToCartCmd(product api.Product, quantity int) tea.Cmd {
	return func() tea.Msg {
		m.cart.AddItem(m.ctx, product, quantity)
		return cartChangedMsg{}
	}
}

func (m Model) removeFromCartCmd(productID string) tea.Cmd {
	return func() tea.Msg {
		m.cart.RemoveItem(m.ctx, productID)
		return cartChangedMsg{}
	}
}

func (m Model) updateQuantityCmd(productID string, quantity int) tea.Cmd {
	return func() tea.Msg {
		if err := m.cart.UpdateQuantity(m.ctx, productID, quantity); err != nil {
			return cartAlertMsg{err: err}
		}
		return cartChangedMsg{}
	}
}

func (m Model) clearCartCmd() tea.Cmd {
	return func() tea.Msg {
		m.cart.Clear(m.ctx)
		return cartChangedMsg{}
	}
}

func (m Model) fetchProductsCmd(query api.ListQuery, forAdmin bool) tea.Cmd {
	return func() tea.Msg {
		page, err := m.client.ListProducts(m.ctx, query)
		return productsMsg{page: page, query: query, forAdmin: forAdmin, err: err}
	}
}

func (m Model) fetchProductCmd(id string) tea.Cmd {
	return func() tea.Msg {
		product, err := m.client.GetProduct(m.ctx, id)
		return productDetailMsg{product: product, err: err}
	}
}

func (m Model) placeOrderCmd(req api.OrderRequest) tea.Cmd {
	return func() tea.Msg {
		confirmation, err := m.client.PlaceOrder(m.ctx, req)
		if err == nil {
			// The cart is spent once the order exists.
			m.cart.Clear(m.ctx)
		}
		return orderPlacedMsg{confirmation: confirmation, err: err}
	}
}

func (m Model) saveProfileCmd(username, email string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.UpdateProfile(m.ctx, username, email)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m Model) createProductCmd(input api.ProductInput) tea.Cmd {
	return func() tea.Msg {
		product, err := m.client.CreateProduct(m.ctx, input)
		return adminSavedMsg{product: product, created: true, err: err}
	}
}

func (m Model) updateProductCmd(id string, input api.ProductInput) tea.Cmd {
	return func() tea.Msg {
		product, err := m.client.UpdateProduct(m.ctx, id, input)
		return adminSavedMsg{product: product, err: err}
	}
}

func (m Model) deleteProductCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return adminDeletedMsg{err: m.client.DeleteProduct(m.ctx, id)}
	}
}
