// screener — одноразовый скан universe без брокера и без ордеров.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stonks/internal/modules/config"
	mdservice "stonks/internal/modules/marketdata/service"
	scservice "stonks/internal/modules/screener/service"
	"stonks/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "screener",
		Short: "Swing-trade screener (pullback strategy)",
		RunE:  runScan,
	}

	rootCmd.Flags().Float64P("account", "a", 0, "Account value in dollars (required)")
	rootCmd.Flags().StringP("tickers", "t", "tickers.txt", "Path to newline-separated ticker list")
	rootCmd.Flags().Float64P("risk", "r", 0, "Base risk percent per trade (overrides default)")
	rootCmd.Flags().IntP("top", "n", 5, "How many ideas to print")
	_ = rootCmd.MarkFlagRequired("account")

	viper.SetEnvPrefix("STONKS")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logger.Init(); err != nil {
		return err
	}
	logger.SetServiceName("screener")

	cfg := config.Default()
	cfg.TickerFile = viper.GetString("tickers")
	if risk := viper.GetFloat64("risk"); risk > 0 {
		cfg.Analysis.BaseRiskPercent = risk
	}

	account := viper.GetFloat64("account")
	if account <= 0 {
		return fmt.Errorf("account value must be positive")
	}
	fmt.Printf("Scanning on account value $%.2f\n\n", account)

	s := scservice.NewScreener(&cfg, mdservice.NewClient(&cfg))
	ideas, err := s.Scan(context.Background(), account)
	if err != nil {
		return err
	}

	top := viper.GetInt("top")
	if top <= 0 || top > len(ideas) {
		top = len(ideas)
	}
	if top == 0 {
		fmt.Println("No setups found.")
		return nil
	}

	for _, idea := range ideas[:top] {
		fmt.Printf("%s (%s)\n", idea.Ticker, idea.Side)
		fmt.Printf("  Qty: %d  Entry: $%.2f  Stop: $%.2f  Target: $%.2f\n",
			idea.Qty, idea.EntryPrice, idea.StopLoss, idea.TargetPrice)
		fmt.Printf("  Potential Gain: %.2f%% ($%.2f)  R/R: %.2f\n",
			idea.PotentialGainPercent, idea.PotentialProfit, idea.RiskRewardRatio)
		fmt.Printf("  Capital: $%.2f (%.1f%% of account)  Max Loss: $%.2f\n",
			idea.TotalCapital, idea.CapitalPercentOfAccount, idea.MaxLoss)
		fmt.Printf("  SMA50: %.2f  SMA200: %.2f\n\n", idea.SMA50, idea.SMA200)
	}
	return nil
}
