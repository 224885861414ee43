package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NethermindEth/rosettanet/node"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
)

const greeting = `
  ___         _   _                  _
 | _ \___ ___| |_| |_ __ _ _ _  ___| |_
 |   / _ (_-< -_)  _|  _/ _' | ' \/ -_)  _|
 |_|_\___/__/___|\__|\__\__,_|_||_\___|\__|

Rosettanet %s serves the Ethereum JSON-RPC API on top of Starknet.

`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := new(node.Config)
	cmd := NewCmd(config, func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), greeting, Version)

		n, err := node.New(config, Version)
		if err != nil {
			return err
		}

		n.Run(cmd.Context())
		return nil
	})

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
