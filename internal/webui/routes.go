// Package webui serves the cryptochain frontend: four server rendered views over the node API.
package webui

// Mounted views.
const (
	ViewApp                = "App"
	ViewBlockchain         = "Blockchain"
	ViewConductTransaction = "ConductTransaction"
	ViewTransactionPool    = "TransactionPool"
)

// Route maps a path to the view rendered for it.
type Route struct {
	Path string
	View string
}

// Routes returns the static route table of the frontend.
func Routes() []Route {
	return []Route{
		{Path: "/", View: ViewApp},
		{Path: "/blockchain", View: ViewBlockchain},
		{Path: "/conduct-transaction", View: ViewConductTransaction},
		{Path: "/transaction-pool", View: ViewTransactionPool},
	}
}
