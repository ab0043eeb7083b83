// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command linkaudit audits the links between markdown documents and
// writes a report.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/linkaudit/internal/report"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// The status line already reported broken links.
		if !errors.Is(err, errBrokenLinks) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newRootCmd creates the root command with global flags bound to viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linkaudit",
		Short:         "Audit links between markdown documents",
		Long:          "linkaudit scans a documentation tree, checks every markdown link, suggests fixes for broken ones, and writes a report.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("root", ".", "Documentation root directory")
	flags.String("root-segment", "", "Folder name to drop from the start of root-relative links (e.g. .wiki)")
	flags.String("extension", ".md", "Markdown file extension")
	flags.StringP("output", "o", "", "Report path (default <root>/LINK-AUDIT-REPORT.md)")
	flags.String("format", "markdown", "Report format: markdown or json")
	flags.Int("workers", 0, "Concurrent document workers (0 = number of CPUs)")
	flags.StringSlice("exclude", nil, "Gitignore-style patterns to skip")
	flags.Bool("gitignore", false, "Honour <root>/.gitignore")
	flags.Bool("check-anchors", false, "Verify link fragments against document headings")
	flags.Bool("orphans", false, "Report documents no other document links to")
	flags.Float64("fuzzy-threshold", 0.5, "Minimum similarity for fuzzy suggestions (negative disables)")
	flags.Int("max-issue-rows", 50, "Compatibility issues listed in the report")
	flags.Int("max-external-samples", 10, "External links sampled in the report")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")

	// Bind flags to viper.
	viper.BindPFlag("root", flags.Lookup("root"))
	viper.BindPFlag("root-segment", flags.Lookup("root-segment"))
	viper.BindPFlag("extension", flags.Lookup("extension"))
	viper.BindPFlag("output", flags.Lookup("output"))
	viper.BindPFlag("format", flags.Lookup("format"))
	viper.BindPFlag("workers", flags.Lookup("workers"))
	viper.BindPFlag("exclude", flags.Lookup("exclude"))
	viper.BindPFlag("gitignore", flags.Lookup("gitignore"))
	viper.BindPFlag("check-anchors", flags.Lookup("check-anchors"))
	viper.BindPFlag("orphans", flags.Lookup("orphans"))
	viper.BindPFlag("fuzzy-threshold", flags.Lookup("fuzzy-threshold"))
	viper.BindPFlag("max-issue-rows", flags.Lookup("max-issue-rows"))
	viper.BindPFlag("max-external-samples", flags.Lookup("max-external-samples"))
	viper.BindPFlag("log-level", flags.Lookup("log-level"))
	viper.BindPFlag("log-format", flags.Lookup("log-format"))

	// Env vars: LINKAUDIT_ROOT, LINKAUDIT_CHECK_ANCHORS, etc.
	viper.SetEnvPrefix("LINKAUDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".linkaudit")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSchemaCmd())

	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print linkaudit version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "linkaudit %s\n", version)
		},
	}
}

// newSchemaCmd creates the "schema" command, which prints the JSON Schema
// of --format json reports.
func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of JSON reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(report.Schema())
			return err
		},
	}
}
