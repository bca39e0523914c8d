package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/topic-engine/backend/internal/bench"
	"github.com/topic-engine/backend/internal/config"
	"github.com/topic-engine/backend/internal/engine"
	"github.com/topic-engine/backend/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "topic-engine")

	rootCmd := &cobra.Command{
		Use:   "topics",
		Short: "Topic Engine - TF-IDF/NMF topic extraction for text corpora",
	}

	rootCmd.AddCommand(
		runCmd(entry),
		preprocessCmd(entry),
		modelCmd(entry),
		benchCmd(entry),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newEngine(entry *logrus.Entry) (*engine.Engine, *config.Config, error) {
	cfg := config.Load()
	store := storage.NewCSVStorage(cfg.Storage.TokensFile, cfg.Storage.FilesFile)
	eng, err := engine.NewEngine(cfg, entry, store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return eng, cfg, nil
}

func runCmd(entry *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "run <input-dir>",
		Short: "Preprocess a corpus directory and extract topics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(entry)
			if err != nil {
				return err
			}
			topics, err := eng.Run(args[0])
			if err != nil {
				return err
			}
			for _, topic := range topics {
				fmt.Println(topic)
			}
			return nil
		},
	}
}

func preprocessCmd(entry *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "preprocess <input-dir>",
		Short: "Tokenize a corpus directory and write the token files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(entry)
			if err != nil {
				return err
			}
			count, err := eng.Preprocess(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Processed %d documents\n", count)
			return nil
		},
	}
}

func modelCmd(entry *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Extract topics from a previously preprocessed corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(entry)
			if err != nil {
				return err
			}
			topics, err := eng.Model()
			if err != nil {
				return err
			}
			for _, topic := range topics {
				fmt.Println(topic)
			}
			return nil
		},
	}
}

func benchCmd(entry *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run the batch harness over bootstrap sample datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, err := newEngine(entry)
			if err != nil {
				return err
			}
			runner, err := bench.NewRunner(cfg, entry, eng)
			if err != nil {
				return err
			}
			return runner.Run()
		},
	}
}
