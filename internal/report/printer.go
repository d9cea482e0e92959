// Package report renders an analytics report for a terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guttosm/goldpulse/internal/analytics"
	"github.com/guttosm/goldpulse/internal/domain/models"
)

// Print writes r to w as plain text sections. opts labels the sections with
// the parameters the report was built with.
func Print(w io.Writer, r models.Report, opts analytics.ReportOptions) error {
	p := &printer{w: w}

	p.linef("Gold prices: %d observations (generated %s)", r.Points, r.GeneratedAt.UTC().Format(time.RFC3339))
	p.line("")

	p.section("Average price")
	if msg, failed := r.Errors[analytics.QueryAverage]; failed {
		p.linef("  n/a (%s)", msg)
	} else {
		p.linef("  %.2f", r.Average)
	}

	p.section(fmt.Sprintf("Top %d prices of the last year", opts.TopN))
	p.points(r.Top)

	p.section(fmt.Sprintf("Bottom %d prices of the last year", opts.TopN))
	p.points(r.Bottom)

	p.section(fmt.Sprintf("Days above %.2fx the %s %d price", opts.Threshold, opts.ReferenceMonth, opts.ReferenceYear))
	p.linef("  %d days", len(r.ProfitableDays))

	p.section(fmt.Sprintf("Prices ranked %d-%d between %d and %d",
		opts.RankSkip+1, opts.RankSkip+max(opts.RankTake, 0), opts.RankFromYear, opts.RankToYear))
	p.points(r.Ranked)

	p.section("Yearly averages")
	for _, ya := range r.YearlyAverages {
		p.linef("  %d\t%.2f\t(%d days)", ya.Year, ya.Average, ya.Count)
	}

	p.section(fmt.Sprintf("Best buy/sell window %d-%d", opts.WindowFromYear, opts.WindowToYear))
	if r.Optimal == nil {
		p.linef("  n/a (%s)", r.Errors[analytics.QueryOptimal])
	} else {
		o := r.Optimal
		p.linef("  buy\t%s\t%.2f", day(o.BuyDate), o.BuyPrice)
		p.linef("  sell\t%s\t%.2f", day(o.SellDate), o.SellPrice)
		p.linef("  ROI\t%.2f%%", analytics.RoundTo(o.ROIPercent, 2))
	}

	if len(r.Errors) > 0 {
		p.section("Failed queries")
		keys := make([]string, 0, len(r.Errors))
		for k := range r.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p.linef("  %s\t%s", k, r.Errors[k])
		}
	}

	return p.flush()
}

type printer struct {
	w   io.Writer
	tw  *tabwriter.Writer
	err error
}

func (p *printer) section(title string) {
	if p.tw != nil {
		p.flushSection()
	}
	p.line("")
	p.line(title)
	p.line(strings.Repeat("-", len(title)))
	p.tw = tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
}

func (p *printer) points(points []models.PricePoint) {
	if len(points) == 0 {
		p.line("  (none)")
		return
	}
	for i, pt := range points {
		p.linef("  %d.\t%s\t%.2f", i+1, day(pt.Date), pt.Price)
	}
}

func (p *printer) line(s string) { p.linef("%s", s) }

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	var out io.Writer = p.w
	if p.tw != nil {
		out = p.tw
	}
	_, p.err = fmt.Fprintf(out, format+"\n", args...)
}

func (p *printer) flushSection() {
	if p.err == nil {
		p.err = p.tw.Flush()
	}
	p.tw = nil
}

func (p *printer) flush() error {
	if p.tw != nil {
		p.flushSection()
	}
	return p.err
}

func day(t time.Time) string { return t.UTC().Format(time.DateOnly) }
