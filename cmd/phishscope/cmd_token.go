package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"phishscope/internal/render"
)

// tokenCmd analyzes an authentication token (JWTs and opaque tokens).
var tokenCmd = &cobra.Command{
	Use:   "token [token]",
	Short: "Analyze an authentication token",
	Long: `Inspects an authentication token. JWTs get their header and payload
decoded claim by claim; opaque tokens get a structural assessment.
The token may be passed as an argument or piped on stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if len(args) == 1 && args[0] != "-" {
			input = args[0]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			input = string(data)
		}
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		res, err := svc.Token(cmd.Context(), input)
		if err != nil {
			return err
		}
		cmd.Println(render.Token(res))
		return nil
	},
}
