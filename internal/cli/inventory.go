package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entrypoint"
	"github.com/mrlokans/bookstore/internal/logging"
)

type InventoryCommand struct {
	Category     string
	DatabasePath string
	Verbose      bool

	Config *config.Config
	Out    io.Writer
}

func NewInventoryCommand() *InventoryCommand {
	return &InventoryCommand{
		Config: config.NewConfig(),
		Out:    os.Stdout,
	}
}

func (cmd *InventoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("inventory", flag.ContinueOnError)

	fs.StringVar(&cmd.Category, "category", "", "Category to count books in, exact match (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.Config.Database.Path, "Path to the sqlite database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable debug logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s inventory [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the number of books whose category equals -category.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s inventory -category Fiction -db ./bookstore.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Category == "" {
		fs.Usage()
		return fmt.Errorf("category is required")
	}

	return nil
}

func (cmd *InventoryCommand) Run() error {
	logger := commandLogger(cmd.Verbose)
	defer func() { _ = logger.Sync() }()

	cfg := *cmd.Config
	if cmd.DatabasePath != "" {
		cfg.Database.Path = cmd.DatabasePath
	}

	ctx := context.Background()
	catalog, err := entrypoint.NewCatalog(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer catalog.Close()

	count, err := catalog.Books.InventoryCount(ctx, cmd.Category)
	if err != nil {
		return fmt.Errorf("failed to count inventory: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Books in category %s: %d\n", cmd.Category, count)
	return nil
}

// commandLogger keeps CLI output readable: console format, warnings only
// unless verbose.
func commandLogger(verbose bool) *zap.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logging.Must(level, "console")
}
