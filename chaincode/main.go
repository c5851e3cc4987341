/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"herbtrace-chaincode/internal/config"
	"herbtrace-chaincode/internal/logger"
	"herbtrace-chaincode/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	chaincode, err := newChaincode(NewSmartContract(log, metrics.New(reg), cfg.RichQueries))
	if err != nil {
		log.Error("Error creating chaincode", "error", err)
		os.Exit(1)
	}

	if cfg.MetricsAddress != "" {
		go func() {
			if err := serveOps(cfg.MetricsAddress, reg, log); err != nil {
				log.Error("ops server stopped", "error", err)
			}
		}()
	}

	if !cfg.AsService() {
		if err := chaincode.Start(); err != nil {
			log.Error("Error starting chaincode", "error", err)
			os.Exit(1)
		}
		return
	}

	tlsProps, err := tlsProperties(cfg)
	if err != nil {
		log.Error("Error loading TLS material", "error", err)
		os.Exit(1)
	}
	server := &shim.ChaincodeServer{
		CCID:     cfg.ChaincodeID,
		Address:  cfg.ServerAddress,
		CC:       chaincode,
		TLSProps: tlsProps,
	}
	log.Info("starting chaincode server", "address", cfg.ServerAddress, "tls", !cfg.TLSDisabled)
	if err := server.Start(); err != nil {
		log.Error("Error starting chaincode server", "error", err)
		os.Exit(1)
	}
}

// tlsProperties reads the server key and certificates named in cfg.
func tlsProperties(cfg *config.Config) (shim.TLSProperties, error) {
	if cfg.TLSDisabled {
		return shim.TLSProperties{Disabled: true}, nil
	}
	key, err := os.ReadFile(cfg.TLSKeyFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("failed to read TLS key: %w", err)
	}
	cert, err := os.ReadFile(cfg.TLSCertFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("failed to read TLS certificate: %w", err)
	}
	props := shim.TLSProperties{Key: key, Cert: cert}
	if cfg.TLSClientCACertFile != "" {
		props.ClientCACerts, err = os.ReadFile(cfg.TLSClientCACertFile)
		if err != nil {
			return shim.TLSProperties{}, fmt.Errorf("failed to read client CA certificate: %w", err)
		}
	}
	return props, nil
}
