package node

import (
	"context"
	"errors"
	"fmt"
	"net"
	"reflect"
	"runtime"
	"strconv"
	"time"

	"github.com/NethermindEth/rosettanet/clients/starknet"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/gasprice"
	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/NethermindEth/rosettanet/registry"
	"github.com/NethermindEth/rosettanet/rpc"
	"github.com/NethermindEth/rosettanet/service"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/NethermindEth/rosettanet/validator"
	"github.com/sourcegraph/conc"
	"gopkg.in/yaml.v3"
)

const (
	defaultGasPricePollInterval = 10 * time.Second
	deployerTimeout             = time.Minute
)

// Config is the top-level rosettanet configuration.
type Config struct {
	LogLevel utils.LogLevel `mapstructure:"log-level" yaml:"log-level"`
	Colour   bool           `mapstructure:"colour" yaml:"colour"`
	Network  utils.Network  `mapstructure:"network" yaml:"network"`
	RPCURL   string         `mapstructure:"rpc-url" yaml:"rpc-url"`

	HTTP          bool   `mapstructure:"http" yaml:"http"`
	HTTPHost      string `mapstructure:"http-host" yaml:"http-host"`
	HTTPPort      uint16 `mapstructure:"http-port" yaml:"http-port"`
	Websocket     bool   `mapstructure:"ws" yaml:"ws"`
	WebsocketHost string `mapstructure:"ws-host" yaml:"ws-host"`
	WebsocketPort uint16 `mapstructure:"ws-port" yaml:"ws-port"`
	Metrics       bool   `mapstructure:"metrics" yaml:"metrics"`
	MetricsPort   uint16 `mapstructure:"metrics-port" yaml:"metrics-port"`
	Pprof         bool   `mapstructure:"pprof" yaml:"pprof"`
	PprofPort     uint16 `mapstructure:"pprof-port" yaml:"pprof-port"`

	RegistryAddress      string        `mapstructure:"registry-address" yaml:"registry-address"`
	DeployerURL          string        `mapstructure:"deployer-url" yaml:"deployer-url"`
	GasPricePollInterval time.Duration `mapstructure:"gas-price-poll-interval" yaml:"gas-price-poll-interval"`
	RPCMaxRetries        int           `mapstructure:"rpc-max-retries" yaml:"rpc-max-retries"`
	MaxGoroutines        int           `mapstructure:"max-goroutines" yaml:"max-goroutines"`
}

type Node struct {
	cfg      *Config
	services []service.Service
	log      utils.Logger

	version string
}

// New builds the gateway and every service enabled in cfg.
func New(cfg *Config, version string) (*Node, error) { //nolint:funlen
	if cfg.Metrics {
		metrics.Enable()
	}

	log, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
	if err != nil {
		return nil, err
	}

	yamlConfig, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	log.Infow(fmt.Sprintf("Running Rosettanet with config:\n%s", string(yamlConfig)))

	if cfg.RegistryAddress == "" {
		return nil, errors.New("registry address is required")
	}
	registryAddress, err := felt.FromHex(cfg.RegistryAddress)
	if err != nil {
		return nil, fmt.Errorf("parse registry address: %w", err)
	}
	if cfg.DeployerURL == "" {
		return nil, errors.New("deployer URL is required")
	}

	rpcURL := cfg.RPCURL
	if rpcURL == "" {
		rpcURL = cfg.Network.RPCURL()
	}
	if rpcURL == "" {
		return nil, fmt.Errorf("rpc URL is required on the %s network", cfg.Network)
	}
	ua := fmt.Sprintf("Rosettanet/%s Starknet Client", version)

	client := starknet.NewClient(rpcURL).
		WithMaxRetries(cfg.RPCMaxRetries).
		WithLogger(log).
		WithUserAgent(ua)
	deployer := starknet.NewClient(cfg.DeployerURL).
		WithTimeout(deployerTimeout).
		WithMaxRetries(cfg.RPCMaxRetries).
		WithLogger(log).
		WithUserAgent(ua)

	addresses := registry.New(client, registryAddress)
	accounts := registry.NewAccounts(addresses, deployer, log)

	interval := cfg.GasPricePollInterval
	if interval <= 0 {
		interval = defaultGasPricePollInterval
	}
	gasPrices := gasprice.New(client, interval, log)

	services := []service.Service{gasPrices}

	rpcHandler := rpc.New(client, addresses, accounts, gasPrices, log).WithVersion(version)
	maxGoroutines := cfg.MaxGoroutines
	if maxGoroutines <= 0 {
		// to improve RPC throughput we double GOMAXPROCS
		maxGoroutines = 2 * runtime.GOMAXPROCS(0)
	}
	jsonrpcServer := jsonrpc.NewServer(maxGoroutines, log).WithValidator(validator.Validator())
	methods, _ := rpcHandler.Methods()
	if err = jsonrpcServer.RegisterMethods(methods...); err != nil {
		return nil, err
	}

	if cfg.HTTP {
		listener, lErr := listen(cfg.HTTPHost, cfg.HTTPPort)
		if lErr != nil {
			return nil, fmt.Errorf("listen on http port: %w", lErr)
		}
		services = append(services, makeRPCOverHTTP(listener, jsonrpcServer, gasPrices, log))
	}
	if cfg.Websocket {
		listener, lErr := listen(cfg.WebsocketHost, cfg.WebsocketPort)
		if lErr != nil {
			return nil, fmt.Errorf("listen on websocket port: %w", lErr)
		}
		services = append(services, makeRPCOverWebsocket(listener, jsonrpcServer, log))
	}
	if cfg.Metrics {
		makeRosettanetMetrics(version)
		listener, lErr := listen("", cfg.MetricsPort)
		if lErr != nil {
			return nil, fmt.Errorf("listen on metrics port: %w", lErr)
		}
		services = append(services, makeMetrics(listener))
	}
	if cfg.Pprof {
		listener, lErr := listen("", cfg.PprofPort)
		if lErr != nil {
			return nil, fmt.Errorf("listen on pprof port: %w", lErr)
		}
		services = append(services, makePPROF(listener))
	}

	log.Infow("Forwarding to Starknet node", "network", cfg.Network, "url", rpcURL,
		"registry", registryAddress)

	return &Node{
		cfg:      cfg,
		services: services,
		log:      log,
		version:  version,
	}, nil
}

func listen(host string, port uint16) (net.Listener, error) {
	return net.Listen("tcp", net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10)))
}

// Run starts all services and blocks until ctx is cancelled or one of them fails.
// Run will wait for all services to return before exiting.
func (n *Node) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	wg := conc.NewWaitGroup()
	for _, s := range n.services {
		wg.Go(func() {
			if err := s.Run(ctx); err != nil {
				n.log.Errorw("Service error", "name", reflect.TypeOf(s), "err", err)
				cancel()
			}
		})
	}
	defer wg.Wait()

	<-ctx.Done()
	cancel()
	n.log.Infow("Shutting down Rosettanet...")
}

func (n *Node) Config() Config {
	return *n.cfg
}
