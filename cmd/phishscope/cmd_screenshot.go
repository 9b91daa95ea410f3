package main

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"phishscope/internal/render"
)

// screenshotCmd analyzes a screenshot image for phishing indicators.
var screenshotCmd = &cobra.Command{
	Use:   "screenshot <file>",
	Short: "Analyze a screenshot of a suspicious page or message",
	Long: `Sends an image to the analysis backend for a visual phishing
assessment: brand impersonation, urgency cues, grammatical errors,
and suspicious layout patterns.

The argument is a path to an image file, or a data: URL containing
the image inline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataURL, err := imageDataURL(args[0])
		if err != nil {
			return err
		}
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		res, err := svc.Screenshot(cmd.Context(), dataURL)
		if err != nil {
			return err
		}
		cmd.Println(render.Screenshot(res))
		return nil
	},
}

// imageDataURL loads the argument into a data: URL. Inline data URLs
// pass through untouched so shell pipelines can hand them in directly.
func imageDataURL(arg string) (string, error) {
	if strings.HasPrefix(arg, "data:") {
		return arg, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", arg, err)
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
