package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"display-service/internal/channel"
	"display-service/internal/domain"
	"display-service/internal/infra"
)

func main() {
	var (
		nameFlag        string
		drinkFlag       string
		sizeFlag        string
		milkFlag        string
		extrasFlag      string
		baseFlag        float64
		extrasTotalFlag float64
		taxRateFlag     float64
		timestampFlag   string
		channelFlag     string
		rawFlag         string
	)

	flag.StringVar(&nameFlag, "name", "Alex", "customer name on the receipt")
	flag.StringVar(&drinkFlag, "drink", "latte", "drink type")
	flag.StringVar(&sizeFlag, "size", "medium", "drink size")
	flag.StringVar(&milkFlag, "milk", "oat", "milk choice")
	flag.StringVar(&extrasFlag, "extras", "", "comma separated extras")
	flag.Float64Var(&baseFlag, "base", 4.50, "base drink price")
	flag.Float64Var(&extrasTotalFlag, "extras-total", 0, "total price of the extras")
	flag.Float64Var(&taxRateFlag, "tax-rate", 0.08, "tax rate applied to the subtotal")
	flag.StringVar(&timestampFlag, "timestamp", "", "order timestamp (defaults to now, RFC 3339)")
	flag.StringVar(&channelFlag, "channel", "", "channel to publish to (defaults to RECEIPT_CHANNEL)")
	flag.StringVar(&rawFlag, "raw", "", "publish this payload verbatim instead of building a receipt")
	flag.Parse()

	// Muat .env (opsional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	target := strings.TrimSpace(channelFlag)
	if target == "" {
		target = cfg.ReceiptChannel
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect redis: %w", err))
	}
	defer rdb.Close()

	publisher := channel.NewPublisher(rdb, target)

	if raw := strings.TrimSpace(rawFlag); raw != "" {
		if err := publisher.PublishRaw(ctx, []byte(raw)); err != nil {
			exitWithError(fmt.Errorf("failed to publish payload: %w", err))
		}
		fmt.Printf("published raw payload to %s\n", target)
		return
	}

	if taxRateFlag < 0 {
		exitWithError(errors.New("-tax-rate must not be negative"))
	}

	receipt := buildReceipt(nameFlag, drinkFlag, sizeFlag, milkFlag, extrasFlag, baseFlag, extrasTotalFlag, taxRateFlag, timestampFlag)
	if missing := receipt.MissingFields(); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "warning: receipt missing %s\n", strings.Join(missing, ", "))
	}

	if err := publisher.PublishReceipt(ctx, receipt); err != nil {
		exitWithError(fmt.Errorf("failed to publish receipt: %w", err))
	}
	fmt.Printf("published receipt for %s (%s %s) to %s, total %.2f\n",
		receipt.Name, receipt.Size, receipt.DrinkType, target, receipt.Pricing.Total)
}

func buildReceipt(name, drink, size, milk, extras string, base, extrasTotal, taxRate float64, timestamp string) domain.Receipt {
	subtotal := round2(base + extrasTotal)
	tax := round2(subtotal * taxRate)
	if strings.TrimSpace(timestamp) == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return domain.Receipt{
		Name:      strings.TrimSpace(name),
		DrinkType: strings.TrimSpace(drink),
		Size:      strings.TrimSpace(size),
		Milk:      strings.TrimSpace(milk),
		Extras:    parseExtras(extras),
		Pricing: domain.Pricing{
			BasePrice:   base,
			ExtrasTotal: extrasTotal,
			Subtotal:    subtotal,
			Tax:         tax,
			Total:       round2(subtotal + tax),
		},
		Timestamp: timestamp,
	}
}

func parseExtras(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	extras := make([]string, 0, len(parts))
	for _, part := range parts {
		if extra := strings.TrimSpace(part); extra != "" {
			extras = append(extras, extra)
		}
	}
	return extras
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
