// Command table-order drives the customer ordering flow from a
// terminal: price a cart, place (or track) an order, then follow its
// status until the kitchen's estimated completion time runs out.
//
// Cart lines are given as arguments in the form id:qty or id:qty:packed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tableserve/internal/client"
	"tableserve/internal/pricing"
)

var hundred = decimal.NewFromInt(100)

func main() {
	var (
		baseURL   = flag.String("base-url", "http://localhost:8080", "Ordering backend base URL")
		business  = flag.String("business", "", "Business id (required)")
		cooperate = flag.String("cooperate", "", "Cooperate id (optional)")
		qr        = flag.String("qr", "", "Table QR code id (required for new orders)")
		name      = flag.String("name", "", "Customer name")
		phone     = flag.String("phone", "", "Customer phone number")
		comment   = flag.String("comment", "", "Order comment")
		track     = flag.String("track", "", "Track an existing order by reference instead of placing one")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *business == "" {
		fmt.Fprintln(os.Stderr, "Error: -business is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := client.New(*baseURL, *business, *cooperate)

	reference := *track
	if reference == "" {
		lines, err := buildCart(ctx, c, flag.Args())
		if err != nil {
			log.Fatal().Err(err).Msg("could not build cart")
		}
		printTotals(lines)

		gateway := client.NewGateway(c)
		rec, _, err := gateway.Submit(ctx, lines,
			client.ServingInfo{Name: *name, PhoneNumber: *phone, Comment: *comment},
			client.Submission{QuickResponseID: *qr})
		if err != nil {
			log.Fatal().Err(err).Msg("order submission failed")
		}
		fmt.Printf("\nOrder placed. Tracking reference: %s\n", rec.Reference)
		reference = rec.Reference
	}

	followOrder(ctx, c, reference, log)
}

// buildCart resolves id:qty[:packed] arguments against the menu.
func buildCart(ctx context.Context, c *client.Client, args []string) ([]pricing.CartLine, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no cart lines given (want id:qty or id:qty:packed)")
	}

	categories, err := c.Categories(ctx)
	if err != nil {
		return nil, err
	}
	type menuEntry struct {
		item client.MenuItem
		cat  client.Category
	}
	index := make(map[string]menuEntry)
	for _, cat := range categories {
		for page := 1; ; page++ {
			items, err := c.Items(ctx, cat.ID, page, 50)
			if err != nil {
				return nil, err
			}
			for _, it := range items.Items {
				index[it.ID] = menuEntry{item: it, cat: cat}
			}
			if len(items.Items) < items.PageSize {
				break
			}
		}
	}

	var lines []pricing.CartLine
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("bad cart line %q", arg)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil || qty < 1 {
			return nil, fmt.Errorf("bad quantity in %q", arg)
		}
		entry, ok := index[parts[0]]
		if !ok {
			return nil, fmt.Errorf("item %q not on the menu", parts[0])
		}
		lines = append(lines, pricing.CartLine{
			ID:          entry.item.ID,
			Price:       entry.item.Price,
			Count:       qty,
			PackingCost: entry.item.PackingCost,
			IsPacked:    len(parts) == 3 && parts[2] == "packed",
			IsVariety:   entry.item.IsVariety,
			VATEnabled:  entry.cat.VATEnabled,
			VATRate:     entry.cat.VATRate,
		})
	}
	return lines, nil
}

func printTotals(lines []pricing.CartLine) {
	totals := pricing.Price(lines)
	fmt.Printf("Subtotal: %s\n", totals.Subtotal.StringFixed(2))
	fmt.Printf("Packing:  %s\n", totals.PackingCost.StringFixed(2))
	fmt.Printf("VAT:      %s", totals.VAT.StringFixed(2))
	if rates := pricing.VATRates(lines); len(rates) > 0 {
		var labels []string
		for _, r := range rates {
			labels = append(labels, r.Mul(hundred).StringFixed(1)+"%")
		}
		fmt.Printf(" (%s)", strings.Join(labels, ", "))
	}
	fmt.Printf("\nTotal:    %s\n", totals.Total.StringFixed(2))
}

// followOrder polls until the estimated completion time elapses,
// re-rendering the timeline on every update and the countdown every
// second. Both tickers are torn down on every exit path.
func followOrder(ctx context.Context, c *client.Client, reference string, log zerolog.Logger) {
	var countdown *client.Countdown

	poller := client.NewPoller(c, reference, func(rec *client.OrderRecord) {
		steps, current := client.Timeline(rec.Status)
		fmt.Printf("\nOrder %s [%s]\n", rec.Reference, client.StageLabel(rec.Status))
		for i, step := range steps {
			mark := " "
			switch {
			case i < current:
				mark = "x"
			case i == current:
				mark = ">"
			}
			fmt.Printf("  [%s] %s\n", mark, step)
		}
		if rec.EstimatedCompletionTime != nil && countdown == nil {
			countdown = client.StartCountdown(*rec.EstimatedCompletionTime, func(remaining string) {
				fmt.Printf("\rEstimated time remaining: %s ", remaining)
			})
		}
	}, log)

	// LIFO: the poller stops first, so nothing writes countdown while
	// it is being stopped.
	defer func() {
		if countdown != nil {
			countdown.Stop()
		}
	}()
	defer poller.Stop()
	poller.Start(ctx)

	select {
	case <-poller.Done():
		fmt.Println("\nTracking finished.")
	case <-ctx.Done():
		fmt.Println("\nTracking cancelled.")
	}
}
