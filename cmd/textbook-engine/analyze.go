// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textbook-engine/internal/engine"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir|files...>",
	Short: "Group a batch of chapter files into draft hierarchies",
	Long: `Analyze builds an upload batch from the given files (or every file in
the given directory), clusters files that belong to the same publication,
and prints the candidate groups with their confidence scores and draft
Series -> Book -> Chapter hierarchies.

Only file metadata is read; the file contents are never opened. Low
confidence is a result, not a failure: the command exits zero either way.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Float64("similarity-threshold", 0, "minimum key similarity for two files to share a group")
	analyzeCmd.Flags().Int("max-parallel", 0, "maximum concurrent per-file extractions")
	analyzeCmd.Flags().Bool("yaml", false, "print the full result as YAML")
	analyzeCmd.Flags().Bool("json", false, "print the full result as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	files, err := collectBatch(args)
	if err != nil {
		return err
	}

	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var progress *os.File
	if !yamlOutput && !jsonOutput {
		progress = os.Stderr
	}

	result, err := engine.Analyze(context.Background(), files, engineConfig(cmd), progress)
	if err != nil {
		return err
	}

	switch {
	case yamlOutput:
		return yaml.NewEncoder(os.Stdout).Encode(result)
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		printResult(result)
		return nil
	}
}

// collectBatch builds UploadedFile records from the arguments. A single
// directory argument expands to its regular files; otherwise each argument
// names one file.
func collectBatch(args []string) ([]types.UploadedFile, error) {
	paths := args
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading batch: %w", err)
		}
		if info.IsDir() {
			entries, err := os.ReadDir(args[0])
			if err != nil {
				return nil, fmt.Errorf("reading batch directory: %w", err)
			}
			paths = nil
			for _, e := range entries {
				if !e.IsDir() {
					paths = append(paths, filepath.Join(args[0], e.Name()))
				}
			}
		}
	}

	files := make([]types.UploadedFile, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, types.UploadedFile{
			ID:           uuid.New().String(),
			Name:         filepath.Base(p),
			Size:         info.Size(),
			MIMEType:     mime.TypeByExtension(filepath.Ext(p)),
			LastModified: info.ModTime().UTC(),
			ContentRef:   p,
		})
	}
	return files, nil
}

func printResult(result engine.Result) {
	for i, g := range result.Groups {
		fmt.Printf("Group: %s  (confidence %.2f)\n", g.Name, g.Confidence)
		if g.SuggestedSeries != "" {
			fmt.Printf("  Series:    %s\n", g.SuggestedSeries)
		}
		if g.SuggestedPublisher != "" {
			fmt.Printf("  Publisher: %s\n", g.SuggestedPublisher)
		}

		draft := result.Drafts[i]
		for _, ch := range draft.Chapters.Chapters {
			num := "  -"
			if ch.ChapterNumber > 0 {
				num = fmt.Sprintf("%3d", ch.ChapterNumber)
			}
			fmt.Printf("  %s  %-40s  %s\n", num, ch.Title, ch.FileName)
		}
		for _, c := range draft.Chapters.Conflicts {
			fmt.Printf("  conflict: chapter %d claimed by %d files\n",
				c.ChapterNumber, len(c.FileIDs))
		}
		fmt.Println(strings.Repeat("-", 72))
	}
	fmt.Printf("%d group(s)\n", len(result.Groups))
}
