// Package saucedemo has page objects for the SauceDemo shop (https://www.saucedemo.com).
package saucedemo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qaforge/web-tests/pages"
)

const (
	selUsername    = `[data-test="username"]`
	selPassword    = `[data-test="password"]`
	selLoginButton = `[data-test="login-button"]`
	selLoginError  = `[data-test="error"]`

	selTitle          = ".title"
	selInventoryItem  = ".inventory_item"
	selCartBadge      = ".shopping_cart_badge"
	selCartLink       = ".shopping_cart_link"
	selBurgerMenu     = "#react-burger-menu-btn"
	selLogoutLink     = "#logout_sidebar_link"
	InventoryPath     = "inventory.html"
	InventoryTitle    = "Products"
	LockedOutErrorMsg = "Sorry, this user has been locked out."
)

// Site is the SauceDemo application at a given base URL.
type Site struct {
	nav     *pages.Navigator
	baseURL string
}

func NewSite(nav *pages.Navigator, baseURL string) *Site {
	return &Site{nav: nav, baseURL: baseURL}
}

// Open goes to a path relative to the site root.
func (s *Site) Open(path string) error {
	return s.nav.Open(pages.JoinURL(s.baseURL, path))
}

type LoginPage struct {
	site *Site
}

func (s *Site) Login() *LoginPage {
	return &LoginPage{site: s}
}

// Open loads the login page, which is the site root.
func (p *LoginPage) Open() (*LoginPage, error) {
	return p, p.site.Open("")
}

func (p *LoginPage) Login(username, password string) error {
	nav := p.site.nav
	if err := nav.Fill(selUsername, username); err != nil {
		return err
	}
	if err := nav.Fill(selPassword, password); err != nil {
		return err
	}
	return nav.Click(selLoginButton)
}

// ErrorText returns the message shown after a rejected login.
func (p *LoginPage) ErrorText() (string, error) {
	if err := p.site.nav.WaitForVisible(selLoginError, 0); err != nil {
		return "", err
	}
	return p.site.nav.Text(selLoginError)
}

type InventoryPage struct {
	site *Site
}

func (s *Site) Inventory() *InventoryPage {
	return &InventoryPage{site: s}
}

func (p *InventoryPage) Open() error {
	return p.site.Open(InventoryPath)
}

// IsLoaded waits briefly for the page title and reports whether it appeared.
func (p *InventoryPage) IsLoaded() bool {
	return p.site.nav.WaitForVisible(selTitle, 0) == nil
}

func (p *InventoryPage) Title() (string, error) {
	return p.site.nav.Text(selTitle)
}

func (p *InventoryPage) ItemCount() (int, error) {
	return p.site.nav.Count(selInventoryItem)
}

func itemButton(name string) string {
	return fmt.Sprintf(".inventory_item:has-text(%q) button", name)
}

// AddToCart presses the item's cart button, which reads "Add to cart" until the item is added.
func (p *InventoryPage) AddToCart(itemName string) error {
	return p.site.nav.Click(itemButton(itemName))
}

// RemoveFromCart presses the same button again, which now reads "Remove".
func (p *InventoryPage) RemoveFromCart(itemName string) error {
	return p.site.nav.Click(itemButton(itemName))
}

// CartCount returns the number on the cart badge. The badge is absent when the cart is empty.
func (p *InventoryPage) CartCount() (int, error) {
	if !p.site.nav.IsVisible(selCartBadge) {
		return 0, nil
	}
	text, err := p.site.nav.Text(selCartBadge)
	if err != nil {
		return 0, err
	}
	return parseBadge(text)
}

func parseBadge(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("unexpected cart badge %q: %w", text, err)
	}
	return n, nil
}

func (p *InventoryPage) OpenCart() error {
	return p.site.nav.Click(selCartLink)
}

// Logout uses the side menu and waits for the login form to come back.
func (p *InventoryPage) Logout() error {
	nav := p.site.nav
	if err := nav.Click(selBurgerMenu); err != nil {
		return err
	}
	if err := nav.Click(selLogoutLink); err != nil {
		return err
	}
	return nav.WaitForVisible(selLoginButton, 0)
}
