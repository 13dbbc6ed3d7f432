package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/talgya/inequality-sim/internal/config"
	"github.com/talgya/inequality-sim/internal/economy"
)

var policiesFlags struct {
	defaults bool
}

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the available policies",
	RunE:  runPolicies,
}

func init() {
	policiesCmd.Flags().BoolVar(&policiesFlags.defaults, "defaults", false, "print the default config as YAML instead")
}

func runPolicies(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if policiesFlags.defaults {
		raw, err := config.Marshal(config.Default())
		if err != nil {
			return err
		}
		_, err = out.Write(raw)
		return err
	}

	t := newTable()
	t.AppendHeader(table.Row{"Policy", "Aliases", "Description"})
	for _, n := range economy.Names() {
		t.AppendRow(table.Row{n, strings.Join(economy.Aliases(n), ", "), economy.Summary(n)})
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
