package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"numdiffbench/types"
)

// Table 以表格输出结果张量，每个规模一段，每个方法一行
func Table(w io.Writer, t *types.ResultTensor) error {
	tw := tabwriter.NewWriter(w, 1, 1, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", t.Kind)
	for s, n := range t.Sizes {
		fmt.Fprintf(tw, "N=%d\t%s\t%s\t%s\n", n, types.Runtime, types.RelativeError, types.SetupTime)
		for m, label := range t.Labels {
			r := t.Rows[s][m]
			fmt.Fprintf(tw, "%s\t%.3e\t%.3e\t%.3e\n", label, r.Runtime, r.RelativeError, r.SetupTime)
		}
	}
	return tw.Flush()
}
