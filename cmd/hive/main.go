// hive is a terminal viewer for the Hive rules engine: it shows a hive, lists the legal
// moves of its pieces and lets one move or place pieces.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/hiverules/hive/internal/ui/cli"
	"github.com/hiverules/hive/internal/ui/signals"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagLayout = flag.String("layout", cli.DefaultLayout,
		"Initial hive: space separated <color><bug>@<q>,<r> entries, e.g. \"wQ@0,0 bB@0,0\". "+
			"Pieces on the same cell are stacked in the order given.")
	flagColor     = flag.Bool("color", true, "Use ANSI colors.")
	flagClear     = flag.Bool("clear", false, "Clear the screen before printing the board.")
	flagCellWidth = flag.Int("cell_width", cli.DefaultCellWidth, "Number of characters per column of the board.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagCellWidth < 6 {
		klog.Exitf("Invalid --cell_width=%d, it must be at least 6", *flagCellWidth)
	}

	ctx, cancel := signals.CancelOnInterrupt(context.Background(), 3*time.Second)
	defer cancel()

	s := must.M1(cli.ParseLayout(*flagLayout))
	ui := cli.New(s, os.Stdin, os.Stdout).
		WithColor(*flagColor).
		WithClearScreen(*flagClear).
		WithCellWidth(*flagCellWidth)
	if err := ui.Run(ctx); err != nil {
		klog.Exitf("Failed to run: %+v", err)
	}
	if *flagColor {
		signals.Reset(os.Stdout)
	}
}
