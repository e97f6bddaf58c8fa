package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <profile-id>",
	Short: "Resolve one index profile ID into an enriched contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := initPipeline("search")
		if err != nil {
			return err
		}

		contact, err := p.Resolve(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "resolve profile")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(contact)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
