package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/splinesync/server/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	port     uint
	logLevel string
	opts     core.Options
)

var rootCmd = &cobra.Command{
	Use:   "splinesync-server",
	Short: "Demo server that streams orbiting shapes to splinesync clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)

		server := core.NewServer(opts)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logrus.Info("shutting down server")
			server.Stop()
			os.Exit(0)
		}()

		logrus.WithFields(logrus.Fields{
			"name":     opts.Name,
			"port":     port,
			"tickRate": opts.TickRate,
			"version":  opts.Version,
		}).Info("starting server")
		return server.Start(port)
	},
}

func init() {
	f := rootCmd.Flags()
	f.UintVar(&port, "port", 8080, "Server port")
	f.StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	f.StringVar(&opts.Name, "name", "splinesync demo", "Server display name")
	f.StringVar(&opts.Version, "version", "", "Required client version (empty = accept any)")
	f.IntVar(&opts.TickRate, "tickrate", 20, "Simulation ticks per second")
	f.IntVar(&opts.LongSyncEvery, "long-every", 0, "Ticks between full snapshots (default one second)")
	f.Float64Var(&opts.DropRate, "drop", 0.2, "Chance of skipping a motion snapshot")
	f.IntVar(&opts.Entities, "entities", 8, "Number of orbiting entities")
	f.Float64Var(&opts.ChurnSeconds, "churn", 5, "Seconds between replacing the oldest entity (0 disables)")
	f.Uint64Var(&opts.Seed, "seed", 1, "Random seed for dropped snapshots")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
