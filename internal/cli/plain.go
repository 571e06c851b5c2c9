package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/kioku/internal/listtree"
)

// printList writes every visible row of list to w using the same grid
// layout as the interactive views, without a cursor.
func printList[T any](w io.Writer, list *listtree.Adapter[T], render rowRenderer[T], columns, width int) error {
	if list.RowCount() == 0 {
		return nil
	}
	host := newListHost(list, render, columns)
	host.setSize(width, max(len(host.grid()), 1))

	for _, line := range strings.Split(strings.TrimSuffix(host.view(false), "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
