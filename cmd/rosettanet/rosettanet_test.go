package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	rosettanet "github.com/NethermindEth/rosettanet/cmd/rosettanet"
	"github.com/NethermindEth/rosettanet/node"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *node.Config {
	return &node.Config{
		LogLevel:             utils.INFO,
		Colour:               true,
		Network:              utils.Mainnet,
		HTTP:                 true,
		HTTPHost:             "localhost",
		HTTPPort:             6060,
		WebsocketHost:        "localhost",
		WebsocketPort:        6061,
		MetricsPort:          9090,
		PprofPort:            6062,
		GasPricePollInterval: 10 * time.Second,
		RPCMaxRetries:        5,
	}
}

func tempCfgFile(t *testing.T, cfg string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rosettanet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestConfigPrecedence(t *testing.T) {
	tests := map[string]struct {
		cfgFile     string
		env         map[string]string
		inputArgs   []string
		expectedCfg func() *node.Config
		expectErr   bool
	}{
		"default config with no flags": {
			expectedCfg: defaultConfig,
		},
		"flags override defaults": {
			inputArgs: []string{
				"--log-level", "debug", "--colour=false", "--network", "sepolia",
				"--http-port", "8545", "--ws", "--metrics", "--registry-address", "0x1234",
				"--deployer-url", "http://localhost:3000", "--gas-price-poll-interval", "30s",
				"--rpc-max-retries", "2", "--max-goroutines", "16",
			},
			expectedCfg: func() *node.Config {
				cfg := defaultConfig()
				cfg.LogLevel = utils.DEBUG
				cfg.Colour = false
				cfg.Network = utils.Sepolia
				cfg.HTTPPort = 8545
				cfg.Websocket = true
				cfg.Metrics = true
				cfg.RegistryAddress = "0x1234"
				cfg.DeployerURL = "http://localhost:3000"
				cfg.GasPricePollInterval = 30 * time.Second
				cfg.RPCMaxRetries = 2
				cfg.MaxGoroutines = 16
				return cfg
			},
		},
		"config file": {
			cfgFile: `log-level: warn
network: custom
rpc-url: http://localhost:5050
http-host: 0.0.0.0
pprof: true
gas-price-poll-interval: 1m
`,
			expectedCfg: func() *node.Config {
				cfg := defaultConfig()
				cfg.LogLevel = utils.WARN
				cfg.Network = utils.Custom
				cfg.RPCURL = "http://localhost:5050"
				cfg.HTTPHost = "0.0.0.0"
				cfg.Pprof = true
				cfg.GasPricePollInterval = time.Minute
				return cfg
			},
		},
		"flags override config file": {
			cfgFile: `network: sepolia
http-port: 7000
`,
			inputArgs: []string{"--http-port", "7001"},
			expectedCfg: func() *node.Config {
				cfg := defaultConfig()
				cfg.Network = utils.Sepolia
				cfg.HTTPPort = 7001
				return cfg
			},
		},
		"environment variables": {
			env: map[string]string{
				"ROSETTANET_REGISTRY_ADDRESS": "0xabcd",
				"ROSETTANET_DEPLOYER_URL":     "http://deployer",
			},
			expectedCfg: func() *node.Config {
				cfg := defaultConfig()
				cfg.RegistryAddress = "0xabcd"
				cfg.DeployerURL = "http://deployer"
				return cfg
			},
		},
		"unknown network": {
			inputArgs: []string{"--network", "goerli"},
			expectErr: true,
		},
		"unknown log level in config file": {
			cfgFile:   "log-level: verbose\n",
			expectErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			args := append([]string{}, tc.inputArgs...)
			if tc.cfgFile != "" {
				args = append([]string{"--config", tempCfgFile(t, tc.cfgFile)}, args...)
			}

			config := new(node.Config)
			cmd := rosettanet.NewCmd(config, func(*cobra.Command, []string) error { return nil })
			cmd.SetArgs(args)

			err := cmd.Execute()
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCfg(), config)
		})
	}
}
