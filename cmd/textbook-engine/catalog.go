// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/textbook-engine/internal/catalog"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Persist and inspect confirmed hierarchies",
	Long: `Catalog manages the local SQLite catalog of confirmed hierarchies.
Use store to persist a reviewer-confirmed draft, and series, books, or
chapters to inspect what has been persisted.`,
}

var catalogStoreCmd = &cobra.Command{
	Use:   "store <draft.yaml>",
	Short: "Persist a confirmed draft hierarchy",
	Long: `Store reads a confirmed draft hierarchy (the three review-stage
sections: series, book, chapters) from a YAML file, re-validates its
structural invariants, and writes it to the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogStore,
}

var catalogSeriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List persisted series",
	Args:  cobra.NoArgs,
	RunE:  runCatalogSeries,
}

var catalogBooksCmd = &cobra.Command{
	Use:   "books [series-id]",
	Short: "List persisted books, optionally for one series",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogBooks,
}

var catalogChaptersCmd = &cobra.Command{
	Use:   "chapters <book-id>",
	Short: "List the chapters of one book",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogChapters,
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "", "directory for the catalog database (default \"catalog\")")

	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogSeriesCmd)
	catalogCmd.AddCommand(catalogBooksCmd)
	catalogCmd.AddCommand(catalogChaptersCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	if dir == "" {
		dir = viper.GetString("catalog_dir")
	}
	if dir == "" {
		dir = "catalog"
	}
	return catalog.NewStore(types.CatalogConfig{CatalogDir: dir})
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading draft: %w", err)
	}
	var draft types.DraftHierarchy
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return fmt.Errorf("parsing draft: %w", err)
	}

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	seriesID, bookID, err := store.StoreConfirmed(context.Background(), draft)
	if err != nil {
		return err
	}
	fmt.Printf("Stored series %s, book %s (%d chapters)\n",
		seriesID, bookID, len(draft.Chapters.Chapters))
	return nil
}

func runCatalogSeries(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	series, err := store.ListSeries(context.Background())
	if err != nil {
		return err
	}
	if len(series) == 0 {
		fmt.Println("No series in the catalog.")
		return nil
	}

	fmt.Printf("%-36s  %-40s  %-10s  %5s  %s\n", "ID", "Name", "Publisher", "Grade", "Subject")
	fmt.Println(strings.Repeat("-", 110))
	for _, s := range series {
		fmt.Printf("%-36s  %-40s  %-10s  %5d  %s\n",
			s.ID, truncate(s.Name, 40), s.Publisher, s.Grade, s.Subject)
	}
	return nil
}

func runCatalogBooks(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	seriesID := ""
	if len(args) > 0 {
		seriesID = args[0]
	}
	books, err := store.ListBooks(context.Background(), seriesID)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Println("No books in the catalog.")
		return nil
	}

	fmt.Printf("%-36s  %6s  %-40s  %s\n", "ID", "Volume", "Title", "Pages")
	fmt.Println(strings.Repeat("-", 95))
	for _, b := range books {
		fmt.Printf("%-36s  %6d  %-40s  %d\n",
			b.ID, b.VolumeNumber, truncate(b.VolumeTitle, 40), b.TotalPages)
	}
	return nil
}

func runCatalogChapters(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	chapters, err := store.ListChapters(context.Background(), args[0])
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		fmt.Println("No chapters for this book.")
		return nil
	}

	for _, ch := range chapters {
		pages := ""
		if ch.HasPageRange() {
			pages = fmt.Sprintf("  pp. %d-%d", ch.StartPage, ch.EndPage)
		}
		fmt.Printf("%3d  %s%s\n", ch.ChapterNumber, ch.Title, pages)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
