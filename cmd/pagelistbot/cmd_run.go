package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wikitools/pagelistbot/internal/logging"
	"github.com/wikitools/pagelistbot/internal/queryparse"
	"github.com/wikitools/pagelistbot/internal/solver"
)

var runCmd = &cobra.Command{
	Use:   "run <query>",
	Short: "Evaluate a single query and print its titles, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	root, err := queryparse.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	p, err := buildProvider()
	if err != nil {
		return err
	}

	to, err := effectiveTimeout()
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
	stream := solver.Solve(ctx, root, p, solver.Options{DefaultLimit: limit, Timeout: to})

	var failed bool
	for item := range stream {
		if v, ok := item.Ok(); ok {
			fmt.Println(v.String())
			continue
		}
		if w, ok := item.Warn(); ok {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
			continue
		}
		e, _ := item.Err()
		fmt.Fprintf(os.Stderr, "error: %s\n", e.Error())
		failed = true
	}
	if failed {
		return fmt.Errorf("query failed")
	}
	logger.Debug("run complete", zap.String("query", args[0]))
	return nil
}
