package webui

import (
	"embed"
	"html/template"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danilovkiri/dk_go_cryptochain/internal/wallet"
)

//go:embed templates/*.html
var templateFS embed.FS

var viewFiles = map[string]string{
	ViewApp:                "templates/app.html",
	ViewBlockchain:         "templates/blockchain.html",
	ViewConductTransaction: "templates/conduct_transaction.html",
	ViewTransactionPool:    "templates/transaction_pool.html",
}

var templateFuncs = template.FuncMap{
	"since": func(ns int64) string {
		return humanize.Time(time.Unix(0, ns))
	},
	"comma": humanize.Comma,
	"short": func(s string) string {
		if len(s) <= 15 {
			return s
		}
		return s[:15] + "..."
	},
	"outputs": sortedOutputs,
}

// output is a single recipient of a transaction.
type output struct {
	Address string
	Amount  int64
}

func sortedOutputs(t wallet.Transaction) []output {
	outputs := make([]output, 0, len(t.Output))
	for address, amount := range t.Output {
		outputs = append(outputs, output{Address: address, Amount: amount})
	}
	sort.Slice(outputs, func(i, j int) bool { return outputs[i].Address < outputs[j].Address })
	return outputs
}

// parseViews parses the layout together with every view template.
func parseViews() (map[string]*template.Template, error) {
	views := make(map[string]*template.Template, len(viewFiles))
	for view, file := range viewFiles {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/transaction.html", file)
		if err != nil {
			return nil, err
		}
		views[view] = t
	}
	return views, nil
}
