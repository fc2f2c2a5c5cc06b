package main

import (
	"os"
	"sync"

	"github.com/qepting91/dex-ai/internal/domain"
	"github.com/qepting91/dex-ai/internal/fetcher"
	"github.com/qepting91/dex-ai/internal/storage"
	"github.com/qepting91/dex-ai/internal/view"
	"github.com/spf13/cobra"
)

var (
	exportType string
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Resolve a whole type (or the catalog) and write NDJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkCategory(exportType); err != nil {
			return err
		}
		p, err := newPipeline()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		refs, err := p.collector.Collect(ctx, exportType)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logger.Info("Starting export", "type", exportType, "references", len(refs))

		resultQueue := make(chan fetcher.Result, cfg.BatchSize)
		recordQueue := make(chan domain.Record, cfg.BatchSize)
		var writerWg sync.WaitGroup

		writer := &storage.WriterService{FilePath: exportOut}
		if exportOut == "" || exportOut == "-" {
			writer.Out = os.Stdout
		}
		writerWg.Add(1)
		go writer.Start(&writerWg, recordQueue)

		failed := 0
		go func() {
			for r := range resultQueue {
				if r.Err != nil {
					failed++
					logger.Warn("Skipping record", "url", r.URL, "err", r.Err)
					continue
				}
				recordQueue <- r.Record
			}
			close(recordQueue)
		}()

		streamErr := p.fetcher.Stream(ctx, view.URLs(refs), resultQueue)
		close(resultQueue)
		writerWg.Wait()

		if streamErr != nil && ctx.Err() != nil {
			logger.Info("Export interrupted", "written", writer.Written())
			return nil
		}
		logger.Info("Export complete", "written", writer.Written(), "failed", failed)
		return writer.Err()
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportType, "type", "t", domain.CategoryAll, "type filter")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")
}
