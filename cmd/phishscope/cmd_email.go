package main

import (
	"github.com/spf13/cobra"

	"phishscope/internal/render"
)

// emailCmd analyzes a raw email message (headers and body).
var emailCmd = &cobra.Command{
	Use:   "email [file]",
	Short: "Analyze a raw email message for phishing indicators",
	Long: `Analyzes a complete raw email, headers included. Reports the
authentication posture (DKIM, SPF, DMARC), a verdict on every link
and attachment, and an overall phishing assessment.

Reads from the named file, or from stdin when no argument (or "-")
is given. Pass the full source of the message, not just the body.`,
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
		res, err := svc.RawEmail(cmd.Context(), input)
		if err != nil {
			return err
		}
		cmd.Println(render.Email(res))
		return nil
	},
}
