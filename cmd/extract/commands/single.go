package commands

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"realty_extractor/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

var (
	singleTitle       string
	singleDescription string
	singleTrail       bool
)

var singleCmd = &cobra.Command{
	Use:   "one",
	Short: "Extract a single listing",
	Long:  "Extract a single listing. Without --title the description is read from stdin.",
	RunE:  runSingle,
}

func init() {
	singleCmd.Flags().StringVar(&singleTitle, "title", "", "Listing title")
	singleCmd.Flags().StringVar(&singleDescription, "description", "", "Listing description")
	singleCmd.Flags().BoolVar(&singleTrail, "trail", false, "Print the reasoning trail")
	rootCmd.AddCommand(singleCmd)
}

func runSingle(cmd *cobra.Command, _ []string) error {
	setupLogger()

	svc, _, err := newExtractor()
	if err != nil {
		return fmt.Errorf("new extractor: %w", err)
	}

	listing := entity.Listing{Title: singleTitle, Description: singleDescription}
	if listing.Title == "" && listing.Description == "" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		listing.Description = string(raw)
	}

	ext := svc.Extract(cmd.Context(), listing, nil)

	var out any = ext.Result
	if singleTrail {
		out = ext
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
