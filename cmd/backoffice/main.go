// Command backoffice drives the back-office API from the terminal: it lists
// records, shows and edits them through the detail controller and fills in
// the create forms.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/backoffice/internal/client"
)

type options struct {
	api     string
	timeout time.Duration
	verbose bool
	color   bool
}

func (o *options) client() (*client.Client, error) {
	return client.New(o.api)
}

func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	lg, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}

// context bounds one command run by the --timeout flag.
func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newRootCmd(out io.Writer) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Back-office API client",
		Long:          "Browse and edit orders, products and customers served by the back-office API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	defaultAPI := os.Getenv("BACKOFFICE_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080/api"
	}
	root.PersistentFlags().StringVar(&o.api, "api", defaultAPI, "API base URL (or BACKOFFICE_API env)")
	root.PersistentFlags().DurationVar(&o.timeout, "timeout", 30*time.Second, "Timeout of one command")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log controller transitions")
	root.PersistentFlags().BoolVar(&o.color, "color", false, "Color order statuses by tone")

	root.AddCommand(
		resourceCmd(o, orderResource(o)),
		resourceCmd(o, productResource()),
		resourceCmd(o, customerResource()),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
