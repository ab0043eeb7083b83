// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/linkaudit/internal/logging"
	"github.com/petar-djukic/linkaudit/pkg/linkaudit"
)

// errBrokenLinks fails a strict audit that found broken links.
var errBrokenLinks = errors.New("broken links found")

// newAuditCmd creates the "audit" command.
func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the documentation tree",
		Long:  "Audit classifies every markdown link under the root, resolves internal links, suggests replacements for broken ones, and writes a report.",
		RunE:  runAudit,
	}

	cmd.Flags().Bool("strict", false, "Exit with status 1 when broken links are found")
	viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))

	return cmd
}

// runAudit executes the audit and prints the summary.
func runAudit(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logging.Config{
		Level:  viper.GetString("log-level"),
		Format: viper.GetString("log-format"),
	}, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	cfg := linkaudit.Config{
		Root:               viper.GetString("root"),
		RootSegment:        viper.GetString("root-segment"),
		Extension:          viper.GetString("extension"),
		Output:             viper.GetString("output"),
		Format:             viper.GetString("format"),
		Workers:            viper.GetInt("workers"),
		Exclude:            viper.GetStringSlice("exclude"),
		Gitignore:          viper.GetBool("gitignore"),
		CheckAnchors:       viper.GetBool("check-anchors"),
		Orphans:            viper.GetBool("orphans"),
		FuzzyThreshold:     viper.GetFloat64("fuzzy-threshold"),
		MaxIssueRows:       viper.GetInt("max-issue-rows"),
		MaxExternalSamples: viper.GetInt("max-external-samples"),
	}

	a, err := linkaudit.New(cfg, linkaudit.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := a.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), result)

	if viper.GetBool("strict") && result.BrokenCount() > 0 {
		return fmt.Errorf("%w: %d", errBrokenLinks, result.BrokenCount())
	}
	return nil
}

// printSummary writes the report location, counts and status line.
func printSummary(w io.Writer, result *linkaudit.Result) {
	audit := result.Audit

	fmt.Fprintf(w, "\nReport saved to: %s\n", result.ReportPath)

	fmt.Fprintln(w, "\n=== Summary ===")
	fmt.Fprintf(w, "Files scanned:     %d\n", audit.TotalFiles)
	fmt.Fprintf(w, "Total links:       %d\n", audit.TotalLinks)
	fmt.Fprintf(w, "Valid links:       %d\n", len(audit.Valid))
	fmt.Fprintf(w, "Broken links:      %d\n", len(audit.Broken))
	fmt.Fprintf(w, "External links:    %d\n", len(audit.External))

	if n := result.BrokenCount(); n > 0 {
		color.New(color.FgRed).Fprintf(w, "\n✗ Found %d broken links\n", n)
		fmt.Fprintf(w, "See report: %s\n", result.ReportPath)
		return
	}
	color.New(color.FgGreen).Fprintln(w, "\n✓ All internal links are valid!")
}
