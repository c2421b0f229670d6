package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/niltaduartte/humano-saude-sub001/internal/catalog"
	"github.com/niltaduartte/humano-saude-sub001/internal/config"
	"github.com/niltaduartte/humano-saude-sub001/internal/logging"
	"github.com/niltaduartte/humano-saude-sub001/internal/quote"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Offline health plan quote simulator",
		Long:          "Runs quote simulations against a catalog snapshot file, without the API or a database",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("tables", "", "quote tables YAML (carrier rules and fallback estimates)")

	root.AddCommand(simulateCmd(), bracketsCmd(), carriersCmd())
	return root
}

func simulateCmd() *cobra.Command {
	var (
		catalogFile string
		spend       string
		carrierName string
		ages        []string
		personType  string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Quote a household against a catalog snapshot",
		Example: "  quotectl simulate --catalog catalog.yaml --spend 1500 --ages 34,36,5\n" +
			"  quotectl simulate --catalog catalog.yaml --spend 900 --carrier \"Amil\" --ages 40 --person-type PJ",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(strings.Replace(spend, ",", ".", 1))
			if err != nil {
				return fmt.Errorf("invalid --spend %q: %w", spend, err)
			}

			service, err := newService(cmd, catalogFile, verbose)
			if err != nil {
				return err
			}

			res, err := service.Simulate(cmd.Context(), quote.Request{
				CurrentSpend:   amount,
				CurrentCarrier: carrierName,
				PersonType:     quote.ParsePersonType(personType),
				Ages:           ages,
			})
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), quote.NewSimulateResponse(res))
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "catalog snapshot YAML file")
	cmd.Flags().StringVar(&spend, "spend", "", "current monthly spend")
	cmd.Flags().StringVar(&carrierName, "carrier", "", "current carrier name, excluded from proposals")
	cmd.Flags().StringSliceVar(&ages, "ages", nil, "ages or bracket labels, comma separated")
	cmd.Flags().StringVar(&personType, "person-type", "PF", "PF or PJ")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log catalog and fallback decisions to stderr")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("spend")
	_ = cmd.MarkFlagRequired("ages")

	return cmd
}

func bracketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brackets",
		Short: "List the age brackets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), quote.NewBracketsResponse())
		},
	}
}

func carriersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "carriers",
		Short: "List the carriers the resolver recognises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), quote.NewCarriersResponse(tables.Resolver().Known()))
		},
	}
}

func newService(cmd *cobra.Command, catalogFile string, verbose bool) (*quote.Service, error) {
	repo, err := catalog.LoadSnapshotFile(catalogFile)
	if err != nil {
		return nil, err
	}

	tables, err := loadTables(cmd)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if verbose {
		if log, err = logging.New(false, "debug"); err != nil {
			return nil, err
		}
	}

	return quote.NewService(repo, tables.Resolver(), log, quote.Options{
		Estimates: tables.QuoteEstimates(),
	}), nil
}

func loadTables(cmd *cobra.Command) (config.Tables, error) {
	path, _ := cmd.Flags().GetString("tables")
	return config.LoadTables(path)
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
