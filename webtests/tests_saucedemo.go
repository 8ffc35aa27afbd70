package webtests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/web-tests/apps/saucedemo"
	"github.com/qaforge/web-tests/framework"
)

const backpack = "Sauce Labs Backpack"

func sauceDemo(t *T, p *Page) *saucedemo.Site {
	return saucedemo.NewSite(p.Nav, t.Config().SauceDemo.URL)
}

// loginAsStandardUser logs in and waits for the inventory.
func loginAsStandardUser(t *T, p *Page) *saucedemo.InventoryPage {
	site := sauceDemo(t, p)
	login, err := site.Login().Open()
	require.NoError(t, err)
	creds := t.Config().SauceDemo.Standard
	require.NoError(t, login.Login(creds.Username, creds.Password))
	require.NoError(t, p.Nav.WaitForURL(saucedemo.InventoryPath, 0))
	return site.Inventory()
}

func DoSauceDemoTests(t *T) {
	t.Group("auth", func(t *T) {
		t.RunWithPage("login success", func(t *T, p *Page) {
			inventory := loginAsStandardUser(t, p)
			require.True(t, inventory.IsLoaded(), "inventory page did not load")
			title, err := inventory.Title()
			require.NoError(t, err)
			assert.Equal(t, saucedemo.InventoryTitle, title)
		}, framework.MarkerSmoke)

		t.RunWithPage("locked out user", func(t *T, p *Page) {
			login, err := sauceDemo(t, p).Login().Open()
			require.NoError(t, err)
			require.NoError(t, login.Login(t.Config().SauceDemo.LockedUser, t.Config().SauceDemo.Standard.Password))
			message, err := login.ErrorText()
			require.NoError(t, err)
			assert.Contains(t, message, saucedemo.LockedOutErrorMsg)
		})

		t.RunWithPage("invalid password", func(t *T, p *Page) {
			login, err := sauceDemo(t, p).Login().Open()
			require.NoError(t, err)
			require.NoError(t, login.Login(t.Config().SauceDemo.Standard.Username, "wrong_password"))
			message, err := login.ErrorText()
			require.NoError(t, err)
			assert.Contains(t, message, "do not match")
		})

		t.RunWithPage("logout", func(t *T, p *Page) {
			inventory := loginAsStandardUser(t, p)
			require.NoError(t, inventory.Logout())
			assert.False(t, inventory.IsLoaded())
		})
	})

	t.Group("inventory", func(t *T) {
		t.RunWithPage("items are listed", func(t *T, p *Page) {
			inventory := loginAsStandardUser(t, p)
			count, err := inventory.ItemCount()
			require.NoError(t, err)
			assert.Equal(t, 6, count)
		}, framework.MarkerSmoke)

		t.RunWithPage("add and remove from cart", func(t *T, p *Page) {
			inventory := loginAsStandardUser(t, p)

			require.NoError(t, inventory.AddToCart(backpack))
			count, err := inventory.CartCount()
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			require.NoError(t, inventory.RemoveFromCart(backpack))
			count, err = inventory.CartCount()
			require.NoError(t, err)
			assert.Equal(t, 0, count)
		})
	})
}
