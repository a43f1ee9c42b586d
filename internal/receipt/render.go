package receipt

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/domain/model"
)

const dateLayout = "2006-01-02 15:04"

// Render は印刷用のレシートを書き出す。
// 印刷レイアウトはUI側の責務で、ここでは項目と並びだけを決める。
func Render(w io.Writer, r model.Receipt) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Code:\t%s\n", r.Code)
	fmt.Fprintf(tw, "Date:\t%s\n", r.Timestamp.Format(dateLayout))
	fmt.Fprintf(tw, "Customer:\t%s (%s)\n", r.CustomerDisplayName, r.CustomerIdentifier)
	if r.CustomerAddress != "" {
		fmt.Fprintf(tw, "Address:\t%s\n", r.CustomerAddress)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", strings.ToUpper(string(r.Status)))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Item\tVariant\tQty\tUnit\tSubtotal\t")
	for _, l := range r.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t\n",
			l.Name,
			variantLabel(l),
			l.Quantity,
			l.UnitPrice.StringFixed(2),
			l.Subtotal().StringFixed(2),
		)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total:\t%s\n", r.Total.StringFixed(2))

	return tw.Flush()
}

func variantLabel(l model.ReceiptLine) string {
	switch {
	case l.Size != "" && l.Color != "":
		return l.Size + "/" + l.Color
	case l.Size != "":
		return l.Size
	default:
		return l.Color
	}
}
