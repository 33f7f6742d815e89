package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"fiber-inspector/config"
	app "fiber-inspector/internal/application"
	"fiber-inspector/internal/infrastructure/imageio"
	"fiber-inspector/internal/infrastructure/storage"
)

type analyzeOptions struct {
	outDir     string
	workers    int
	asJSON     bool
	summary    bool
	notes      string
	operator   string
	idealRatio float64
	maxDefects float64
	minArea    float64
	maxArea    float64
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <image|dir>...",
		Short: "Analyze fiber endface images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := collectImages(args)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			c, logger, err := global.setup(cmd, func(cfg *config.Config) {
				if flags.Changed("workers") {
					cfg.Batch.Workers = opts.workers
				}
				if flags.Changed("ideal-ratio") {
					cfg.Analysis.IdealCoreCladRatio = opts.idealRatio
				}
				if flags.Changed("max-defects") {
					cfg.Analysis.MaxAllowedDefects = opts.maxDefects
				}
				if flags.Changed("min-area") {
					cfg.Analysis.MinDefectArea = opts.minArea
				}
				if flags.Changed("max-area") {
					cfg.Analysis.MaxDefectArea = opts.maxArea
				}
			})
			if err != nil {
				return err
			}
			defer c.Close()

			items, err := c.BatchService.Run(cmd.Context(), paths, app.BatchOptions{
				Workers:  c.Config.Batch.Workers,
				OutDir:   opts.outDir,
				Operator: opts.operator,
				Notes:    opts.notes,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				err = writeItemsJSON(out, items)
			} else {
				err = writeItemsText(out, items, opts.summary)
			}
			if err != nil {
				return err
			}

			failed := 0
			for _, item := range items {
				if item.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				logger.WithField("failed", failed).Warn("some files were not analyzed")
				return fmt.Errorf("%d of %d files failed", failed, len(items))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "d", "", "Write annotated images (<name>_annotated.png) to this directory")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", config.DefaultWorkers, "Number of parallel analyzers (0 = physical cores)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print inspection records as JSON")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print the full summary for each image")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "Notes stored with each record")
	cmd.Flags().StringVar(&opts.operator, "operator", "cli", "Operator stored with each record")
	cmd.Flags().Float64Var(&opts.idealRatio, "ideal-ratio", 0, "Ideal core-clad ratio (overrides config)")
	cmd.Flags().Float64Var(&opts.maxDefects, "max-defects", 0, "Maximum allowed total defect severity (overrides config)")
	cmd.Flags().Float64Var(&opts.minArea, "min-area", 0, "Minimum defect contour area, exclusive (overrides config)")
	cmd.Flags().Float64Var(&opts.maxArea, "max-area", 0, "Maximum defect contour area, inclusive (overrides config)")

	return cmd
}

// collectImages раскрывает каталоги в список файлов изображений
func collectImages(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && imageio.IsImageFile(e.Name()) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found")
	}
	return paths, nil
}

func writeItemsText(w io.Writer, items []app.BatchItem, withSummary bool) error {
	var b strings.Builder
	for _, item := range items {
		if item.Record == nil {
			fmt.Fprintf(&b, "%s: error: %v\n", item.Path, item.Err)
			continue
		}

		r := item.Record.Result
		verdict := "FAIL"
		if r.Acceptable {
			verdict = "PASS"
		}
		fmt.Fprintf(&b, "%s: %s quality=%.2f ratio=%.3f concentricity=%.3f defects=%d id=%s\n",
			item.Path, verdict, r.OverallQuality, r.CoreCladRatio, r.Concentricity, len(r.Defects), item.Record.ID)
		if item.Err != nil {
			fmt.Fprintf(&b, "  warning: %v\n", item.Err)
		}
		if withSummary {
			fmt.Fprintf(&b, "%s\n", strings.TrimRight(r.Summary, "\n"))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeItemsJSON(w io.Writer, items []app.BatchItem) error {
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		if item.Record == nil {
			continue
		}
		data, err := storage.MarshalRecord(item.Record)
		if err != nil {
			return err
		}
		records = append(records, data)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
