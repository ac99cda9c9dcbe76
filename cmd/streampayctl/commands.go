package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jafarshop/streamcheckout/internal/service"
	"github.com/jafarshop/streamcheckout/internal/streampay"
)

func newStatusCmd(opts *options) *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the gateway configuration and optionally test the connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, cfg, err := opts.gateway()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "API URL:    %s\n", cfg.StreamPay.APIURL)
			fmt.Fprintf(out, "API key:    %t\n", cfg.StreamPay.APIKey != "")
			fmt.Fprintf(out, "Secret key: %t\n", cfg.StreamPay.SecretKey != "")
			fmt.Fprintf(out, "Mock mode:  %t\n", gateway.MockMode())

			if !probe {
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			status, err := gateway.Ping(ctx)
			if err != nil {
				return fmt.Errorf("connection test failed: %s", service.UserMessage(err))
			}
			fmt.Fprintf(out, "Connection: HTTP %d\n", status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Call the API to test the connection")
	return cmd
}

func newCreateProductCmd(opts *options) *cobra.Command {
	var req streampay.ProductRequest
	var price string

	cmd := &cobra.Command{
		Use:   "create-product",
		Short: "Create a product and print its UUID",
		Example: `  streampayctl create-product --name "Monthly Subscription" --price 99 --description "Full access for one month"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil || !amount.IsPositive() {
				return fmt.Errorf("invalid --price %q", price)
			}
			req.UnitPrice = amount.StringFixed(2)

			gateway, _, err := opts.gateway()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			product, err := gateway.CreateProduct(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create product: %s", service.UserMessage(err))
			}
			return printJSON(cmd.OutOrStdout(), product)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&price, "price", "", "Unit price in SAR, e.g. 99 or 113.85")
	cmd.Flags().StringVar(&req.Currency, "currency", streampay.DefaultCurrency, "Currency code")
	cmd.Flags().BoolVar(&req.Recurring, "recurring", false, "Bill the product on a schedule")
	cmd.Flags().StringVar(&req.RecurringInterval, "interval", "", "Recurring interval, e.g. MONTH")
	cmd.Flags().IntVar(&req.RecurringFrequency, "frequency", 0, "Number of intervals between charges")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newCreateConsumerCmd(opts *options) *cobra.Command {
	var req streampay.ConsumerRequest

	cmd := &cobra.Command{
		Use:   "create-consumer",
		Short: "Create a consumer for restricted payment links",
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, _, err := opts.gateway()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			consumer, err := gateway.CreateConsumer(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create consumer: %s", service.UserMessage(err))
			}
			return printJSON(cmd.OutOrStdout(), consumer)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Customer full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Customer email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Customer phone")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGetInvoiceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get-invoice <invoice-id>",
		Short: "Fetch an invoice to confirm a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, _, err := opts.gateway()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			invoice, err := gateway.GetInvoice(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get invoice: %s", service.UserMessage(err))
			}
			return printJSON(cmd.OutOrStdout(), invoice)
		},
	}
}
