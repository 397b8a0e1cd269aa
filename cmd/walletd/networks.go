package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlexZinkM/multichain-wallet/internal/config"
	"github.com/AlexZinkM/multichain-wallet/internal/network"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List supported networks and their endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := network.NewRegistry(config.Get().Endpoints(), nil, zap.NewNop())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSYMBOL\tCHAIN ID\tENDPOINT")
		for _, n := range r.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", n.ID, n.Name, n.Symbol, n.ChainID, n.Endpoint)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}
