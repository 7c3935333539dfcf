package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/cargoauthors/internal/cli"
	errs "github.com/matzehuels/cargoauthors/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	args, err := cli.NormalizeArgs(args)
	if err != nil {
		return err
	}

	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// printError writes err as "error: ..." followed by one "caused by: ..."
// line per wrapped cause.
func printError(w io.Writer, err error) {
	chain := errs.Chain(err)
	if len(chain) == 0 {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error: %s\n", chain[0])
	for _, cause := range chain[1:] {
		fmt.Fprintf(w, "caused by: %s\n", cause)
	}
}
