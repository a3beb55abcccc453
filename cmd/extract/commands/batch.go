package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/extraction"
	"realty_extractor/internal/domain/service/listing"
	"realty_extractor/internal/infrastructure/persistence"
)

// Размер порции на одну горутину: прогресс обновляется после каждой порции.
const chunkPerWorker = 4

var (
	batchInput  string
	batchOutput string
	batchSQLite string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract listings from a JSON Lines file",
	Long: "Each input line is {\"title\":...,\"description\":...,\"prior\":{...}}. " +
		"Each output line is the extraction for the input line with the same number.",
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "Input JSON Lines file (required)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Output file, stdout by default")
	batchCmd.Flags().StringVar(&batchSQLite, "sqlite", "", "Also store results in this SQLite file")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

type batchLine struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Prior       *entity.PartialRecord `json:"prior,omitempty"`
}

func runBatch(cmd *cobra.Command, _ []string) error {
	setupLogger()
	ctx := cmd.Context()

	svc, cfg, err := newExtractor()
	if err != nil {
		return fmt.Errorf("new extractor: %w", err)
	}

	inputs, err := readInputs(batchInput)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	var store *listing.Service
	if batchSQLite != "" {
		db, err := persistence.OpenSQLite(ctx, batchSQLite)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		defer db.Close()

		store = listing.NewService(svc, persistence.NewListingRepository(db))
	}

	w := bufio.NewWriter(out)
	defer w.Flush()
	enc := json.NewEncoder(w)

	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetDescription("extracting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("listings"),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
	)

	parallelism := max(cfg.BatchParallelism, 1)
	chunk := parallelism * chunkPerWorker

	for start := 0; start < len(inputs); start += chunk {
		part := inputs[start:min(start+chunk, len(inputs))]

		results, err := svc.ExtractBatch(ctx, part, parallelism)
		if err != nil {
			return fmt.Errorf("extract batch at line %d: %w", start+1, err)
		}

		for _, res := range results {
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}

		if store != nil {
			if _, err := store.SaveBatch(ctx, toListingInputs(part), results); err != nil {
				return fmt.Errorf("save batch at line %d: %w", start+1, err)
			}
		}

		_ = bar.Add(len(part))
	}

	return bar.Finish()
}

func toListingInputs(inputs []extraction.Input) []listing.Input {
	return lo.Map(inputs, func(in extraction.Input, _ int) listing.Input {
		return listing.Input{Listing: in.Listing, Prior: in.Prior}
	})
}

func readInputs(path string) ([]extraction.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var inputs []extraction.Input

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; scanner.Scan(); n++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var line batchLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}

		inputs = append(inputs, extraction.Input{
			Listing: entity.Listing{Title: line.Title, Description: line.Description},
			Prior:   line.Prior,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return inputs, nil
}
