package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adrianreza/wayangkg/pkg/config"
	"github.com/adrianreza/wayangkg/pkg/export"
	"github.com/adrianreza/wayangkg/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build [corpus files...]",
	Short: "Build a knowledge graph from annotated corpus files",
	Long: `Build reads one or more annotated corpus files (JSON arrays of
[text, {"entities": [[start, end, label], ...]}] entries), runs the
extraction pipeline over them and writes the resulting graph.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("dataset", "", "dataset name recorded on every entity (default: file name)")
	buildCmd.Flags().StringP("output", "o", "graph.json", "output JSON file")
	buildCmd.Flags().String("parquet-nodes", "", "also write nodes to this Parquet file")
	buildCmd.Flags().String("parquet-edges", "", "also write edges to this Parquet file")
	buildCmd.Flags().String("patterns", "", "extra relation pattern catalog (YAML)")
	buildCmd.Flags().String("parser-url", "", "dependency parse service URL")

	viper.BindPFlag("extraction.pattern_file", buildCmd.Flags().Lookup("patterns"))
	viper.BindPFlag("parser.base_url", buildCmd.Flags().Lookup("parser-url"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("parser-url") {
		cfg.Parser.Enabled = true
	}

	log := newLogger(cfg)
	client, err := newKGClient(cfg, log)
	if err != nil {
		return err
	}
	defer client.Close()

	dataset, _ := cmd.Flags().GetString("dataset")
	ctx := cmd.Context()

	var docs []types.Document
	for _, path := range args {
		name := dataset
		if name == "" {
			name = datasetFromPath(path)
		}
		loaded, err := export.LoadAnnotations(path, name)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		log.Info("loaded corpus file", "file", path, "documents", len(loaded))
		docs = append(docs, loaded...)
	}

	result, err := client.ProcessCorpus(ctx, docs)
	if err != nil {
		return err
	}
	for _, f := range result.Failed {
		log.Warn("document skipped", "document", f.DocumentID, "error", f.Error)
	}

	output, _ := cmd.Flags().GetString("output")
	if err := client.ExportJSON(output); err != nil {
		return err
	}
	log.Info("graph written", "file", output)

	parquetNodes, _ := cmd.Flags().GetString("parquet-nodes")
	parquetEdges, _ := cmd.Flags().GetString("parquet-edges")
	if parquetNodes != "" && parquetEdges != "" {
		if err := client.ExportParquet(parquetNodes, parquetEdges); err != nil {
			return err
		}
		log.Info("parquet written", "nodes", parquetNodes, "edges", parquetEdges)
	}

	stats := client.Statistics()
	fmt.Printf("Nodes: %d\nEdges: %d\nDensity: %.4f\nComponents: %d\n",
		stats.NodeCount, stats.EdgeCount, stats.Density, stats.ComponentCount)
	for _, e := range stats.TopEntities {
		fmt.Printf("  %-30s %-8s degree=%d\n", e.ID, e.Type, e.Degree)
	}
	return nil
}

// datasetFromPath derives a dataset name from a corpus file path.
func datasetFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
