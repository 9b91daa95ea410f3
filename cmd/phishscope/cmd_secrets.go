package main

import (
	"github.com/spf13/cobra"

	"phishscope/internal/render"
)

// secretsCmd scans code or configuration text for embedded secrets.
var secretsCmd = &cobra.Command{
	Use:   "secrets [file]",
	Short: "Scan code or config text for hardcoded secrets",
	Long: `Scans a block of code or configuration for hardcoded credentials:
API keys, private keys, connection strings, passwords, and tokens.
Each finding reports the line, secret type, a redacted snippet,
a risk tier, and a remediation suggestion.

Reads from the named file, or from stdin when no argument (or "-")
is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		res, err := svc.Secrets(cmd.Context(), input)
		if err != nil {
			return err
		}
		cmd.Println(render.Secrets(res))
		return nil
	},
}
