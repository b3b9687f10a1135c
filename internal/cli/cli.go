// Package cli wires the cobra command tree for the agent binary.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/erikvoss/paytrader/internal/agent"
	"github.com/erikvoss/paytrader/internal/config"
	"github.com/erikvoss/paytrader/internal/display"
	"github.com/erikvoss/paytrader/internal/events"
	"github.com/erikvoss/paytrader/internal/ledger"
	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
	"github.com/erikvoss/paytrader/internal/news"
	"github.com/erikvoss/paytrader/internal/paidcall"
)

type app struct {
	cfg        *config.Config
	log        *logging.Logger
	jsonReport bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "paytrader",
		Short: "paytrader - budget-capped trading analysis over paid APIs",
		Long: `paytrader runs trading analysis workflows against metered data services,
escalating from cheap signal checks to expensive predictions only when the
cheaper tiers justify the spend. A hard budget cap bounds every run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env, ignored when absent.
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log, err := logging.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.cfg = cfg
			a.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(a)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(a))
	rootCmd.AddCommand(newSmartCmd(a))
	rootCmd.AddCommand(newBatchCmd(a))
	rootCmd.AddCommand(newServicesCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().BoolVar(&a.jsonReport, "json", false, "Emit the spending report as JSON")

	return rootCmd
}

func (a *app) newAgent() *agent.Agent {
	executor := paidcall.NewClient(a.cfg.ProviderURL, a.cfg.PaymentToken, a.log.Named("paidcall"))

	var provider agent.NewsProvider
	if a.cfg.NewsText != "" {
		provider = &news.StaticProvider{Text: a.cfg.NewsText}
	} else {
		provider = news.NewGoogleNewsProvider()
	}

	costs := agent.Costs{
		Signal:     a.cfg.SignalCost,
		Sentiment:  a.cfg.SentimentCost,
		Prediction: a.cfg.PredictionCost,
	}
	return agent.New(a.cfg.AgentID, a.cfg.BudgetCap, costs, executor, provider, a.log.Named("agent"))
}

// publish sends decisions to Kafka when brokers are configured.
func (a *app) publish(decisions ...models.Decision) {
	if !a.cfg.PublishingEnabled() {
		return
	}
	pub, err := events.NewPublisher(a.cfg.KafkaBrokers, a.cfg.KafkaDecisionTopic, a.log.Named("events"))
	if err != nil {
		a.log.Warn("decision publishing disabled", logging.Error(err))
		return
	}
	defer pub.Close()

	for i := range decisions {
		if err := pub.PublishDecision(&decisions[i]); err != nil {
			a.log.Warn("failed to publish decision", logging.String("symbol", decisions[i].Symbol), logging.Error(err))
		}
	}
}

func (a *app) printReport(ag *agent.Agent) {
	report := ledger.BuildReport(ag.ID(), ag.Ledger())
	if a.jsonReport {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			a.log.Error("failed to encode report", logging.Error(err))
			return
		}
		fmt.Println(string(data))
		return
	}
	fmt.Println(display.RenderReport(&report))
}

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run the full deep analysis for a symbol",
		Long: `Run the unconditional escalation path: market signal, then sentiment,
then prediction, each tier gated by the previous tier's result and the
remaining budget.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag := a.newAgent()
			decision, err := ag.DeepAnalysis(cmd.Context(), strings.ToUpper(args[0]))
			if err != nil {
				a.printReport(ag)
				return err
			}
			fmt.Println(display.RenderDecision(decision))
			a.publish(*decision)
			a.printReport(ag)
			return nil
		},
	}
	return cmd
}

func newSmartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "smart SYMBOL",
		Short: "Run the adaptive analysis for a symbol",
		Long: `Adapt spending to signal strength: weak signals stop at the cheap
tier, medium signals buy a sentiment check first, strong signals go
straight to the prediction service.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag := a.newAgent()
			decision, err := ag.SmartAnalysis(cmd.Context(), strings.ToUpper(args[0]))
			if err != nil {
				a.printReport(ag)
				return err
			}
			fmt.Println(display.RenderDecision(decision))
			a.publish(*decision)
			a.printReport(ag)
			return nil
		},
	}
}

func newBatchCmd(a *app) *cobra.Command {
	var symbolsFile string

	cmd := &cobra.Command{
		Use:   "batch [SYMBOL...]",
		Short: "Run the cost-optimized batch over multiple symbols",
		Long: `Probe each symbol with the cheap signal tier and only escalate the
strongest ones to a full deep analysis. The batch stops early when 90%
of the budget is spent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			symbols := make([]string, 0, len(args))
			for _, s := range args {
				symbols = append(symbols, strings.ToUpper(s))
			}
			if symbolsFile != "" {
				fromFile, err := loadSymbolsFile(symbolsFile)
				if err != nil {
					return err
				}
				symbols = append(symbols, fromFile...)
			}
			if len(symbols) == 0 {
				return fmt.Errorf("no symbols provided")
			}

			ag := a.newAgent()
			results, err := ag.AnalyzeBatch(cmd.Context(), symbols)
			if err != nil && len(results) == 0 {
				return err
			}

			fmt.Print(display.RenderBatch(results))
			if len(results) < len(symbols) {
				fmt.Printf("stopped after %d of %d symbols: budget nearly exhausted\n",
					len(results), len(symbols))
			}
			a.publish(results...)
			a.printReport(ag)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbolsFile, "file", "", "File with one symbol per line")
	return cmd
}

func newServicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the provider's paid services",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := paidcall.NewClient(a.cfg.ProviderURL, a.cfg.PaymentToken, a.log.Named("paidcall"))
			services, err := client.Discover(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%-16s %-8s %-10s %s\n", "SERVICE", "METHOD", "PRICE", "ENDPOINT")
			for _, svc := range services {
				fmt.Printf("%-16s %-8s $%-9s %s\n", svc.Name, svc.Method, svc.Price, svc.Endpoint)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("paytrader v1.0.0")
		},
	}
}

func loadSymbolsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}

	var symbols []string
	for _, line := range strings.Split(string(data), "\n") {
		symbol := strings.TrimSpace(strings.ToUpper(line))
		if symbol != "" && !strings.HasPrefix(symbol, "#") {
			symbols = append(symbols, symbol)
		}
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no valid symbols found in %s", path)
	}
	return symbols, nil
}
