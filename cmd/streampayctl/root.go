package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/streamcheckout/internal/config"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

type options struct {
	verbose bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "streampayctl",
		Short: "Operate the Stream Pay account behind the checkout",
		Long: `streampayctl talks to the Stream Pay API with the credentials from .env.

Products created here provide the UUIDs used by the checkout catalog.
Without STREAM_PAY_API_KEY and STREAM_PAY_SECRET_KEY every command runs against the demo gateway.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Deadline for each API call")

	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newCreateProductCmd(opts))
	rootCmd.AddCommand(newCreateConsumerCmd(opts))
	rootCmd.AddCommand(newGetInvoiceCmd(opts))

	return rootCmd
}

// gateway loads configuration and builds the client for a command
func (o *options) gateway() (streampay.Gateway, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zap.NewNop()
	if o.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}
	return streampay.NewGateway(cfg.StreamPay, logger), cfg, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
