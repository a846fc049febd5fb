package cmd

import (
	"fmt"
	"io"
	"os"

	solchain "github.com/chinmay1088/solcollect/chains/solana"
	"github.com/chinmay1088/solcollect/sweep"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// displayPlaces is the number of SOL decimals shown on the console.
const displayPlaces = 6

// printer renders per-account outcomes on the console.
type printer struct {
	out     io.Writer
	quiet   bool
	network string
	bar     *progressbar.ProgressBar
}

func newPrinter(out io.Writer, quiet bool, total int, description string) *printer {
	// the bar only makes sense on an interactive stderr
	visible := !quiet && term.IsTerminal(int(os.Stderr.Fd()))
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:     "[green]=[reset]",
			SaucerHead: "[green]>[reset]",
			BarStart:   "[",
			BarEnd:     "]",
		}),
	)
	return &printer{out: out, quiet: quiet, bar: bar}
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *printer) println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// step wraps an observer line so the progress bar is redrawn below it.
// Failed accounts are printed even when quiet.
func (p *printer) step(status sweep.Status, line func()) {
	_ = p.bar.Clear()
	if !p.quiet || status == sweep.StatusFailed {
		line()
	}
	_ = p.bar.Add(1)
}

func (p *printer) finish() {
	_ = p.bar.Finish()
}

func (p *printer) balanceLine(o sweep.Outcome) {
	p.step(o.Status, func() {
		if o.Status == sweep.StatusFailed {
			p.printf("❌ %s: failed to fetch balance - %v\n", o.Address, o.Err)
			return
		}
		p.printf("🟣 %s  %s\n", o.Address, solchain.FormatSOL(o.Balance, displayPlaces))
	})
}

func (p *printer) transferLine(o sweep.Outcome) {
	p.step(o.Status, func() {
		switch o.Status {
		case sweep.StatusOK:
			p.printf("✅ %s: sent %s\n", o.Address, color.GreenString(solchain.FormatSOL(o.Amount, displayPlaces)))
			p.printf("   📝 Signature: %s\n", o.Signature)
			p.printf("   🔗 Explorer: %s\n", explorerURL(p.network, o.Signature))
		case sweep.StatusPlanned:
			p.printf("📋 %s: would send %s (balance %s)\n", o.Address,
				color.CyanString(solchain.FormatSOL(o.Amount, displayPlaces)),
				solchain.FormatSOL(o.Balance, displayPlaces))
		case sweep.StatusSkipped:
			p.printf("⏭️  %s: %s, skipping (balance %s)\n", o.Address,
				color.YellowString(o.Reason), solchain.FormatSOL(o.Balance, displayPlaces))
		case sweep.StatusFailed:
			p.printf("❌ %s: %s - %v\n", o.Address, color.RedString(o.Reason), o.Err)
			if !o.Signature.IsZero() {
				p.printf("   📝 Signature: %s (check manually)\n", o.Signature)
			}
		}
	})
}

func (p *printer) summary(s sweep.Summary) {
	p.println()
	p.printf("📊 Summary: %d wallets", s.Total)
	if s.OK > 0 {
		p.printf(", %s", color.GreenString("%d ok", s.OK))
	}
	if s.Planned > 0 {
		p.printf(", %s", color.CyanString("%d planned", s.Planned))
	}
	if s.Skipped > 0 {
		p.printf(", %s", color.YellowString("%d skipped", s.Skipped))
	}
	if s.Failed > 0 {
		p.printf(", %s", color.RedString("%d failed", s.Failed))
	}
	p.println()
	p.printf("   Total balance: %s\n", solchain.FormatSOL(s.Lamports, displayPlaces))
	if s.OK > 0 || s.Planned > 0 {
		p.printf("   Collected:     %s\n", solchain.FormatSOL(s.Transferred, displayPlaces))
	}
}
