package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entrypoint"
	"github.com/mrlokans/bookstore/internal/services"
)

type AdjustPricesCommand struct {
	Factor       float64
	DatabasePath string
	DryRun       bool
	Verbose      bool

	Config *config.Config
	Out    io.Writer
}

func NewAdjustPricesCommand() *AdjustPricesCommand {
	return &AdjustPricesCommand{
		Config: config.NewConfig(),
		Out:    os.Stdout,
	}
}

func (cmd *AdjustPricesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("adjust-prices", flag.ContinueOnError)

	fs.Float64Var(&cmd.Factor, "factor", cmd.Config.Pricing.AdjustFactor, "Multiplier applied to every price")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.Config.Database.Path, "Path to the sqlite database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Print the new prices without saving them")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s adjust-prices [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Multiply the price of every book.\n")
		fmt.Fprintf(os.Stderr, "The previous prices are saved to AUDIT_DIR first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s adjust-prices -dry-run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s adjust-prices -factor 0.9\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.ValidatePriceFactor(cmd.Factor); err != nil {
		fs.Usage()
		return err
	}

	return nil
}

func (cmd *AdjustPricesCommand) Run() error {
	logger := commandLogger(cmd.Verbose)
	defer func() { _ = logger.Sync() }()

	cfg := *cmd.Config
	cfg.Pricing.AdjustFactor = cmd.Factor
	if cmd.DatabasePath != "" {
		cfg.Database.Path = cmd.DatabasePath
	}

	ctx := context.Background()
	catalog, err := entrypoint.NewCatalog(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer catalog.Close()

	if cmd.DryRun {
		books, err := catalog.Books.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}
		fmt.Fprintf(cmd.Out, "Dry run, factor %.4g, %d books:\n", cmd.Factor, len(books))
		for _, b := range books {
			fmt.Fprintf(cmd.Out, "  %s  %.2f -> %.2f  %s\n", b.ISBN, b.Price, services.AdjustPrice(b.Price, cmd.Factor), b.Title)
		}
		return nil
	}

	adjusted, err := catalog.Books.AdjustPrices(ctx)
	if err != nil {
		return fmt.Errorf("failed to adjust prices: %w", err)
	}
	fmt.Fprintf(cmd.Out, "Adjusted %d prices by factor %.4g\n", len(adjusted), cmd.Factor)
	return nil
}
