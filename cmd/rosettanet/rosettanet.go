package main

import (
	"strings"
	"time"

	"github.com/NethermindEth/rosettanet/node"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

const (
	configF               = "config"
	logLevelF             = "log-level"
	colourF               = "colour"
	networkF              = "network"
	rpcURLF               = "rpc-url"
	httpF                 = "http"
	httpHostF             = "http-host"
	httpPortF             = "http-port"
	wsF                   = "ws"
	wsHostF               = "ws-host"
	wsPortF               = "ws-port"
	metricsF              = "metrics"
	metricsPortF          = "metrics-port"
	pprofF                = "pprof"
	pprofPortF            = "pprof-port"
	registryAddressF      = "registry-address"
	deployerURLF          = "deployer-url"
	gasPricePollIntervalF = "gas-price-poll-interval"
	rpcMaxRetriesF        = "rpc-max-retries"
	maxGoroutinesF        = "max-goroutines"

	defaultConfig               = ""
	defaultColour               = true
	defaultRPCURL               = ""
	defaultHTTP                 = true
	defaultHTTPHost             = "localhost"
	defaultHTTPPort             = uint16(6060)
	defaultWS                   = false
	defaultWSHost               = "localhost"
	defaultWSPort               = uint16(6061)
	defaultMetrics              = false
	defaultMetricsPort          = uint16(9090)
	defaultPprof                = false
	defaultPprofPort            = uint16(6062)
	defaultRegistryAddress      = ""
	defaultDeployerURL          = ""
	defaultGasPricePollInterval = 10 * time.Second
	defaultRPCMaxRetries        = 5
	defaultMaxGoroutines        = 0

	configFlagUsage    = "The YAML configuration file."
	logLevelFlagUsage  = "Options: debug, info, warn, error."
	colourUsage        = "Use `--colour=false` command to disable colourized outputs (ANSI Escape Codes)."
	networkUsage       = "Options: mainnet, sepolia, custom. Custom networks require --rpc-url."
	rpcURLUsage        = "The Starknet node requests are forwarded to. Defaults to the public node of the network."
	httpUsage          = "Enables the Ethereum JSON-RPC server over HTTP."
	httpHostUsage      = "The interface on which the HTTP server will listen for requests."
	httpPortUsage      = "The port on which the HTTP server will listen for requests."
	wsUsage            = "Enables the Ethereum JSON-RPC server over websockets."
	wsHostUsage        = "The interface on which the websocket server will listen for requests."
	wsPortUsage        = "The port on which the websocket server will listen for requests."
	metricsUsage       = "Enables the prometheus metrics endpoint on the default port."
	metricsPortUsage   = "The port on which the prometheus endpoint will listen for requests."
	pprofUsage         = "Enables the pprof endpoint on the default port."
	pprofPortUsage     = "The port on which the pprof HTTP server will listen for requests."
	registryUsage      = "Starknet address of the Rosettanet registry contract."
	deployerURLUsage   = "JSON-RPC endpoint of the service deploying Rosettanet accounts."
	gasPriceUsage      = "How often the gas price of the latest block is fetched."
	rpcMaxRetriesUsage = "Maximum number of retries of a failed request to the Starknet node. " +
		"Only transport failures and 429/5xx responses are retried."
	maxGoroutinesUsage = "Maximum number of requests handled concurrently. Defaults to twice GOMAXPROCS."
)

// NewCmd returns the root command. Flags, the config file and ROSETTANET_ environment
// variables are decoded into config before run is called.
func NewCmd(config *node.Config, run func(*cobra.Command, []string) error) *cobra.Command {
	rosettanetCmd := &cobra.Command{
		Use:     "rosettanet",
		Short:   "Ethereum JSON-RPC gateway for Starknet.",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    run,
	}

	var cfgFile string

	rosettanetCmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		v.AutomaticEnv()
		v.SetEnvPrefix("ROSETTANET")
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		return v.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		)))
	}

	defaultLogLevel := utils.INFO
	defaultNetwork := utils.Mainnet

	rosettanetCmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	rosettanetCmd.Flags().Var(&defaultLogLevel, logLevelF, logLevelFlagUsage)
	rosettanetCmd.Flags().Bool(colourF, defaultColour, colourUsage)
	rosettanetCmd.Flags().Var(&defaultNetwork, networkF, networkUsage)
	rosettanetCmd.Flags().String(rpcURLF, defaultRPCURL, rpcURLUsage)
	rosettanetCmd.Flags().Bool(httpF, defaultHTTP, httpUsage)
	rosettanetCmd.Flags().String(httpHostF, defaultHTTPHost, httpHostUsage)
	rosettanetCmd.Flags().Uint16(httpPortF, defaultHTTPPort, httpPortUsage)
	rosettanetCmd.Flags().Bool(wsF, defaultWS, wsUsage)
	rosettanetCmd.Flags().String(wsHostF, defaultWSHost, wsHostUsage)
	rosettanetCmd.Flags().Uint16(wsPortF, defaultWSPort, wsPortUsage)
	rosettanetCmd.Flags().Bool(metricsF, defaultMetrics, metricsUsage)
	rosettanetCmd.Flags().Uint16(metricsPortF, defaultMetricsPort, metricsPortUsage)
	rosettanetCmd.Flags().Bool(pprofF, defaultPprof, pprofUsage)
	rosettanetCmd.Flags().Uint16(pprofPortF, defaultPprofPort, pprofPortUsage)
	rosettanetCmd.Flags().String(registryAddressF, defaultRegistryAddress, registryUsage)
	rosettanetCmd.Flags().String(deployerURLF, defaultDeployerURL, deployerURLUsage)
	rosettanetCmd.Flags().Duration(gasPricePollIntervalF, defaultGasPricePollInterval, gasPriceUsage)
	rosettanetCmd.Flags().Int(rpcMaxRetriesF, defaultRPCMaxRetries, rpcMaxRetriesUsage)
	rosettanetCmd.Flags().Int(maxGoroutinesF, defaultMaxGoroutines, maxGoroutinesUsage)

	return rosettanetCmd
}
