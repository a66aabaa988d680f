package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wikitools/pagelistbot/internal/logging"
	"github.com/wikitools/pagelistbot/internal/scriptfile"
)

var scriptCmd = &cobra.Command{
	Use:   "script <file>",
	Short: "Run every named query in a saved-query script, in declaration order",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	sf, err := scriptfile.Parse(string(data))
	if err != nil {
		return err
	}

	p, err := buildProvider()
	if err != nil {
		return err
	}
	limit, err := effectiveDefaultLimit()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	ctx = logging.WithLogger(ctx, logger)

	results, err := scriptfile.Resolve(ctx, sf, p, limit)
	for _, res := range results {
		fmt.Printf("%s:\n", res.Name)
		for _, t := range res.Titles {
			fmt.Printf("  %s\n", t.String())
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "%s: warning: %s\n", res.Name, w.String())
		}
	}
	if err != nil {
		return err
	}
	return nil
}
