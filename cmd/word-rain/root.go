package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/word-rain/config"
	"github.com/lixenwraith/word-rain/content"
	"github.com/lixenwraith/word-rain/core"
	"github.com/lixenwraith/word-rain/parameter"
	"github.com/lixenwraith/word-rain/status"
)

// Global flags available to all subcommands
var configFile string

// NewRootCmd creates the root command; without a subcommand it plays
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word-rain",
		Short: "word-rain - a falling word typing game",
		Long: `word-rain drops words down the terminal. Type a word before it
reaches the line at the bottom to clear it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file path")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewPlayCmd())
	cmd.AddCommand(NewWordsCmd())
	cmd.AddCommand(NewTableCmd())

	return cmd
}

// NewPlayCmd creates the play subcommand
func NewPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start a game in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd)
		},
	}
}

// NewWordsCmd creates the words subcommand
func NewWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <category>",
		Short: "List the words of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := content.ParseCategory(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			for _, w := range content.Words(category, cfg.CustomWords) {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}

// NewTableCmd creates the table subcommand
func NewTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the effective difficulty table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), cfg.Table)
		},
	}
}

func writeTable(out io.Writer, table parameter.Table) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tDIFFICULTY\tMIN SPEED\tMAX SPEED\tSPAWN MS\tSPECIAL RATE")
	for _, m := range parameter.Modes {
		for _, d := range parameter.Difficulties {
			row, err := table.Lookup(m, d)
			if err != nil {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%d\t%.2f\n",
				m, d, row.MinSpeed, row.MaxSpeed, row.SpawnInterval.Milliseconds(), row.SpecialWordRate)
		}
	}
	return tw.Flush()
}

// runPlay loads config, owns the terminal and runs the frame loop until quit
func runPlay(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, logFile := setupLogging(cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	reg := status.NewRegistry()
	if cfg.MetricsAddr != "" {
		srv := status.NewServer(cfg.MetricsAddr, reg, logger)
		if _, err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Stop(ctx); err != nil {
				logger.Error().Err(err).Msg("metrics server shutdown")
			}
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	// Engine goroutines restore the terminal before reporting a crash
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	s, err := newSession(cfg, screen, logger, reg, nil)
	if err != nil {
		return err
	}
	defer s.close()
	if err := s.start(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	s.run(events)
	return nil
}
