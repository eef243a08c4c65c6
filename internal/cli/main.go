package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "clipper",
		Short:        "Scan source channels and publish short highlight clips",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().StringSlice("channels", nil, "Source channels (ids or @handles), first listed wins scarce quota")
	root.Flags().Int("max-per-channel", 0, "Recent videos considered per channel")
	root.Flags().Int("clips-per-day", 0, "Global cap on clips emitted in one run")
	root.Flags().Int("min-clip", 0, "Min clip duration seconds")
	root.Flags().Int("max-clip", 0, "Max clip duration seconds")
	root.Flags().String("visibility", "", "Upload visibility: public, unlisted or private")
	root.Flags().String("ledger", "", "Ledger path")

	// Hidden tuning flag (internal)
	root.Flags().Int("clip-workers", 0, "Concurrent clip emission workers per video")
	_ = root.Flags().MarkHidden("clip-workers")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
