// Package cli implements certgen, an offline tool that renders donation
// certificates and inspects page plans and verification payloads.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aidconnect/internal/infra"
)

type options struct {
	verbose bool
	out     io.Writer
}

func (o *options) logger() zerolog.Logger {
	if !o.verbose {
		return zerolog.Nop()
	}
	return infra.NewLoggerTo("development", os.Stderr)
}

// NewRootCommand builds the certgen command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{out: out}
	root := &cobra.Command{
		Use:   "certgen",
		Short: "Render and inspect AidConnect donation certificates",
		Long: `certgen renders donation certificates without running the API.

It uses the same NGO directory, certificate layout and page slicing as the
server, so its output matches what donors download.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging to stderr")

	root.AddCommand(newRenderCommand(opts))
	root.AddCommand(newPlanCommand(opts))
	root.AddCommand(newVerifyCommand(opts))
	return root
}

// Execute runs certgen with os.Args.
func Execute(version string) error {
	root := NewRootCommand(os.Stdout)
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
