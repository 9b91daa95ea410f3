package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"phishscope/internal/render"
)

// domainCmd analyzes one or more domains or email addresses.
var domainCmd = &cobra.Command{
	Use:   "domain [domain-or-address]...",
	Short: "Analyze the reputation and email footprint of a domain or address",
	Long: `Checks a domain or full email address against the analysis backend:
threat-database reputation, public email aliases and address formats, and -
for full addresses - verification that the exact address exists (typo
squatting on a real domain is a primary phishing vector).

Multiple inputs are analyzed concurrently and printed in input order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		return runBatch(cmd, args, func(input string) (string, error) {
			res, err := svc.Domain(cmd.Context(), input)
			if err != nil {
				return "", err
			}
			return render.Domain(res), nil
		})
	},
}

// runBatch analyzes every input with bounded concurrency and prints the
// rendered results in input order. Per-input failures do not cancel the
// rest of the batch.
func runBatch(cmd *cobra.Command, inputs []string, analyze func(string) (string, error)) error {
	outputs := make([]string, len(inputs))
	failures := make([]error, len(inputs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			outputs[i], failures[i] = analyze(input)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for i, input := range inputs {
		if len(inputs) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n", input)
		}
		if failures[i] != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n\n", failures[i])
			errs = append(errs, failures[i])
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), outputs[i])
	}
	return errors.Join(errs...)
}
