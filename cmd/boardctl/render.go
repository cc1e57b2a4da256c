package main

import (
	"fmt"
	"io"
	"strings"

	"watches-backend/internal/boardclient"
	"watches-backend/pkg/kanban"
)

func summaryOf(c kanban.Card) (boardclient.OrderSummary, bool) {
	s, ok := c.Payload.(boardclient.OrderSummary)
	return s, ok
}

// printBoard writes one block per column in display order.
func printBoard(w io.Writer, state kanban.State) {
	for i, col := range state.Columns() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", strings.ToUpper(string(col.Status)), len(col.Cards))
		for _, c := range col.Cards {
			fmt.Fprintf(w, "  %-36s  %s\n", c.ID, cardLabel(c))
		}
	}
}
