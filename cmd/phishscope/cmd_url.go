package main

import (
	"github.com/spf13/cobra"

	"phishscope/internal/render"
)

// urlCmd analyzes one or more URLs.
var urlCmd = &cobra.Command{
	Use:   "url [url]...",
	Short: "Analyze a URL for phishing and malware indicators",
	Long: `Deconstructs a URL and checks it against the analysis backend:
threat-database reputation, domain registration age, TLS certificate
details, and content inference. Requires an absolute URL (scheme + host).

Multiple inputs are analyzed concurrently and printed in input order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		return runBatch(cmd, args, func(input string) (string, error) {
			res, err := svc.URL(cmd.Context(), input)
			if err != nil {
				return "", err
			}
			return render.URL(res), nil
		})
	},
}
