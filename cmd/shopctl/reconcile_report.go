package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/osse101/BrandishShop/internal/economy"
	"github.com/osse101/BrandishShop/internal/reconcile"
)

const defaultJournalPath = "logs/reconciliation.jsonl"

type ReconcileReportCommand struct {
	out io.Writer
}

func (c *ReconcileReportCommand) Name() string {
	return "reconcile-report"
}

func (c *ReconcileReportCommand) Description() string {
	return "Summarise trades that need manual correction [journal path]"
}

func (c *ReconcileReportCommand) Run(args []string) error {
	path := getEnv("RECONCILIATION_LOG_PATH", defaultJournalPath)
	if len(args) > 0 {
		path = args[0]
	}

	entries, err := reconcile.ReadJournal(path)
	if err != nil {
		return err
	}
	return writeReport(c.out, entries)
}

type userTotals struct {
	userID  string
	entries int
	gold    int64
}

// writeReport prints every correction followed by per-user totals. The gold
// total is what a buy compensation failed to refund.
func writeReport(w io.Writer, entries []reconcile.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No reconciliation entries.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOPERATION\tUSER\tITEM\tCOST\tFAILED STEP\tCORRECTION")

	byUser := map[string]*userTotals{}
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Operation, e.UserID, e.ItemName, e.Cost, e.FailedStep, e.Correction)

		t, ok := byUser[e.UserID]
		if !ok {
			t = &userTotals{userID: e.UserID}
			byUser[e.UserID] = t
		}
		t.entries++
		if e.Operation == economy.OperationBuy {
			t.gold += e.Cost
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	totals := make([]*userTotals, 0, len(byUser))
	for _, t := range byUser {
		totals = append(totals, t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].userID < totals[j].userID })

	fmt.Fprintf(w, "\n%d entries across %d users\n", len(entries), len(totals))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tENTRIES\tGOLD OWED")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", t.userID, t.entries, t.gold)
	}
	return tw.Flush()
}
