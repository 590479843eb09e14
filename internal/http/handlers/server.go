package handlers

import (
	"github.com/keebstore/storefront/internal/catalog"
	"github.com/keebstore/storefront/internal/order"
	"github.com/keebstore/storefront/internal/session"
)

var (
	storeCatalog    *catalog.Catalog
	sessionStore    session.Store
	sessionLocks    = session.NewLocks()
	orderChannel    order.Channel
	customBuildLink string
)

func SetCatalog(c *catalog.Catalog) {
	storeCatalog = c
}

func SetSessionStore(s session.Store) {
	sessionStore = s
}

func SetOrderChannel(ch order.Channel) {
	orderChannel = ch
}

// SetCustomBuildLink sets where GET /custom-build redirects to.
func SetCustomBuildLink(link string) {
	customBuildLink = link
}
