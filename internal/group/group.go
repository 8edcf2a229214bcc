// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package group partitions an upload batch into candidate file groups.
//
// Clustering is agglomerative over a union-find structure: every pair of
// files whose normalized keys are similar enough is merged, and merges chain
// transitively. Because the pairwise relation is symmetric and every pair is
// considered, the resulting partition does not depend on input order.
package group

import (
	"sort"
	"strings"

	"github.com/bbalet/stopwords"

	"github.com/pdiddy/textbook-engine/internal/normalize"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

// Member pairs one uploaded file with its normalized key, positioned by its
// batch index.
type Member struct {
	File types.UploadedFile
	Key  string
}

// Cluster is one candidate group: the batch indices of its members in
// ascending order plus the representative key they clustered on.
type Cluster struct {
	// Key is the most common member key; ties go to the earliest member.
	Key string

	// Indexes are the members' positions in the input batch, ascending.
	Indexes []int
}

// Partition clusters the batch by normalized-key similarity. Every input
// file lands in exactly one cluster; files similar to nothing become
// singletons. An empty batch yields no clusters.
func Partition(members []Member, cfg types.EngineConfig) []Cluster {
	cfg = cfg.Normalized()

	tokenSets := make([]map[string]bool, len(members))
	for i, m := range members {
		set := make(map[string]bool)
		for _, tok := range normalize.Tokens(m.Key) {
			set[tok] = true
		}
		tokenSets[i] = set
	}

	uf := newUnionFind(len(members))
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if similar(members[i].Key, members[j].Key, tokenSets[i], tokenSets[j], cfg) {
				uf.union(i, j)
			}
		}
	}

	byRoot := make(map[int][]int)
	for i := range members {
		root := uf.find(i)
		byRoot[root] = append(byRoot[root], i)
	}

	roots := make([]int, 0, len(byRoot))
	for root := range byRoot {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	clusters := make([]Cluster, 0, len(roots))
	for _, root := range roots {
		indexes := byRoot[root]
		sort.Ints(indexes)
		clusters = append(clusters, Cluster{
			Key:     representativeKey(members, indexes),
			Indexes: indexes,
		})
	}
	return clusters
}

// similar reports whether two keys are close enough to merge. Token-set
// overlap is the primary signal; for short keys, where a single token
// variant ("math" vs "maths") swamps the ratio, a Levenshtein comparison of
// the whole key is tried as well. The fallback requires the digit-bearing
// tokens of both keys to be identical: "class9" and "class10" are one edit
// apart but name different publications, and the edit ratio must never
// bridge a grade or volume difference. Empty keys never match anything.
func similar(keyA, keyB string, setA, setB map[string]bool, cfg types.EngineConfig) bool {
	if keyA == "" || keyB == "" {
		return false
	}
	if keyA == keyB {
		return true
	}
	if jaccard(setA, setB) >= cfg.SimilarityThreshold {
		return true
	}
	if len(setA) <= cfg.ShortKeyTokens && len(setB) <= cfg.ShortKeyTokens &&
		digitTokens(setA) == digitTokens(setB) {
		return editSimilarity(keyA, keyB) >= cfg.EditSimilarityThreshold
	}
	return false
}

// digitTokens renders the digit-bearing tokens of a token set in sorted
// order. Such tokens encode grades and volume numbers.
func digitTokens(set map[string]bool) string {
	var toks []string
	for tok := range set {
		if strings.ContainsAny(tok, "0123456789") {
			toks = append(toks, tok)
		}
	}
	sort.Strings(toks)
	return strings.Join(toks, " ")
}

// jaccard computes intersection-over-union of two token sets. Disjoint or
// empty sets score zero, so files sharing no tokens can never merge.
func jaccard(a, b map[string]bool) float64 {
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 || inter == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// editSimilarity maps Levenshtein distance to a [0,1] similarity ratio.
func editSimilarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := stopwords.LevenshteinDistance([]byte(a), []byte(b), "en", false)
	return 1 - float64(dist)/float64(longest)
}

// representativeKey picks the most common key among cluster members, with
// ties resolved by earliest batch index.
func representativeKey(members []Member, indexes []int) string {
	counts := make(map[string]int)
	for _, i := range indexes {
		counts[members[i].Key]++
	}
	best := members[indexes[0]].Key
	for _, i := range indexes {
		if counts[members[i].Key] > counts[best] {
			best = members[i].Key
		}
	}
	return best
}
