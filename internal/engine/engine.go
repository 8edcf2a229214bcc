// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs the full inference pipeline over one upload batch:
// per-file pattern extraction, key normalization, clustering, confidence
// scoring, and draft hierarchy construction.
//
// The pipeline is a pure batch computation. Extraction runs in parallel
// bounded by EngineConfig.MaxParallel, with results stored by batch index so
// the output never depends on goroutine scheduling. Two runs over the same
// batch, in any file order, produce the same partition.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/textbook-engine/internal/extract"
	"github.com/pdiddy/textbook-engine/internal/group"
	"github.com/pdiddy/textbook-engine/internal/hierarchy"
	"github.com/pdiddy/textbook-engine/internal/normalize"
	"github.com/pdiddy/textbook-engine/internal/score"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

// Result is the engine's output for one batch: the partition into groups and
// one draft hierarchy per group, index-aligned.
type Result struct {
	Groups []types.FileGroup      `json:"groups" yaml:"groups"`
	Drafts []types.DraftHierarchy `json:"drafts" yaml:"drafts"`
}

// Analyze processes one upload batch. An empty batch yields an empty result.
// Unrecognizable filenames degrade to low-confidence singleton groups; no
// input is an error. Progress lines are written to w when it is non-nil.
func Analyze(ctx context.Context, files []types.UploadedFile, cfg types.EngineConfig, w io.Writer) (Result, error) {
	if len(files) == 0 {
		return Result{}, nil
	}
	cfg = cfg.Normalized()

	fields, keys, err := extractBatch(ctx, files, cfg)
	if err != nil {
		return Result{}, err
	}

	members := make([]group.Member, len(files))
	for i, f := range files {
		members[i] = group.Member{File: f, Key: keys[i]}
	}
	clusters := group.Partition(members, cfg)

	if w != nil {
		fmt.Fprintf(w, "Analyzed %d file(s) into %d group(s)\n", len(files), len(clusters))
	}

	result := Result{
		Groups: make([]types.FileGroup, 0, len(clusters)),
		Drafts: make([]types.DraftHierarchy, 0, len(clusters)),
	}
	for _, cl := range clusters {
		g, groupFields := assembleGroup(cl, files, fields, keys, cfg)
		result.Groups = append(result.Groups, g)
		result.Drafts = append(result.Drafts, hierarchy.Build(g, groupFields))
		if w != nil {
			fmt.Fprintf(w, "  %-40s  %d file(s)  confidence %.2f\n", g.Name, len(g.Files), g.Confidence)
		}
	}
	return result, nil
}

// ExtractSeriesInfo is the standalone single-filename entry point, used for
// single-file uploads and manual override previews.
func ExtractSeriesInfo(name string) types.SeriesInfo {
	key := normalize.Key(name)
	members := []score.Input{{Key: key, Fields: extract.Fields(name)}}
	info := score.MajorityFields(members)
	info.Name = score.Group(members, key, types.EngineConfig{}).SuggestedSeries
	return info
}

// ManualGroup assembles a user-created group. Manual groups bypass scoring:
// they are authoritative, with confidence fixed at 1.0. Suggested fields are
// still derived from the members so the wizard can prefill its stages.
func ManualGroup(name string, files []types.UploadedFile) types.FileGroup {
	members := make([]score.Input, len(files))
	for i, f := range files {
		members[i] = score.Input{Key: normalize.Key(f.Name), Fields: extract.Fields(f.Name)}
	}
	var repKey string
	if len(files) > 0 {
		repKey = members[0].Key
	}
	suggested := score.Group(members, repKey, types.EngineConfig{})

	return types.FileGroup{
		ID:                 uuid.New().String(),
		Name:               name,
		Key:                repKey,
		Files:              files,
		SuggestedSeries:    suggested.SuggestedSeries,
		SuggestedPublisher: suggested.SuggestedPublisher,
		Confidence:         1.0,
		IsUserCreated:      true,
	}
}

// DraftForGroup builds the draft hierarchy for one group outside a batch
// run, re-extracting its members' fields. Used for manual groups and for
// rebuilding a draft after group edits.
func DraftForGroup(g types.FileGroup) types.DraftHierarchy {
	fields := make([]types.ExtractedFields, len(g.Files))
	for i, f := range g.Files {
		fields[i] = extract.Fields(f.Name)
	}
	return hierarchy.Build(g, fields)
}

// extractBatch runs pattern extraction and key normalization for every file,
// bounded by cfg.MaxParallel. Results are written by index.
func extractBatch(ctx context.Context, files []types.UploadedFile, cfg types.EngineConfig) ([]types.ExtractedFields, []string, error) {
	fields := make([]types.ExtractedFields, len(files))
	keys := make([]string, len(files))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxParallel)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			fields[i] = extract.Fields(f.Name)
			keys[i] = normalize.Key(f.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return fields, keys, nil
}

// assembleGroup scores one cluster and materializes its FileGroup plus the
// index-aligned field slice for the hierarchy builder.
func assembleGroup(cl group.Cluster, files []types.UploadedFile, fields []types.ExtractedFields, keys []string, cfg types.EngineConfig) (types.FileGroup, []types.ExtractedFields) {
	groupFiles := make([]types.UploadedFile, 0, len(cl.Indexes))
	groupFields := make([]types.ExtractedFields, 0, len(cl.Indexes))
	members := make([]score.Input, 0, len(cl.Indexes))
	for _, idx := range cl.Indexes {
		groupFiles = append(groupFiles, files[idx])
		groupFields = append(groupFields, fields[idx])
		members = append(members, score.Input{Key: keys[idx], Fields: fields[idx]})
	}

	scored := score.Group(members, cl.Key, cfg)

	return types.FileGroup{
		ID:                 uuid.New().String(),
		Name:               normalize.Label(cl.Key, groupFiles[0].Name),
		Key:                cl.Key,
		Files:              groupFiles,
		SuggestedSeries:    scored.SuggestedSeries,
		SuggestedPublisher: scored.SuggestedPublisher,
		Confidence:         scored.Confidence,
	}, groupFields
}
