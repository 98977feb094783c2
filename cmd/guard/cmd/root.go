package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagListenAddr    string
	flagMetricsPort   uint
	flagDatadir       string
	flagOwner         string
	flagBeneficiaries []string
	flagWindow        string
	flagLogLevel      string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "guard",
	Short: "Run an inheritance guard node",
	RunE:  runGuard,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagListenAddr, "listen-addr", "l", ":8080",
		"address for the REST API server")
	rootCmd.PersistentFlags().UintVar(&flagMetricsPort, "metrics-port", 9090,
		"port for the prometheus metrics server")
	rootCmd.PersistentFlags().StringVarP(&flagDatadir, "datadir", "d", "data",
		"directory for the guard state database")
	rootCmd.PersistentFlags().StringVar(&flagOwner, "owner", "",
		"hex address of the vault owner, required on first start")
	rootCmd.PersistentFlags().StringSliceVar(&flagBeneficiaries, "beneficiaries", nil,
		"hex addresses of the initial beneficiaries, at least one required on first start")
	rootCmd.PersistentFlags().StringVar(&flagWindow, "inactivity-window", "2160h",
		"owner inactivity window after which inheritance becomes claimable")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "loglevel", "info",
		"zerolog level to use")

	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	log = zerolog.New(zerolog.NewConsoleWriter())

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("GUARD")
	viper.AutomaticEnv()
}
