// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package group

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/pdiddy/textbook-engine/internal/normalize"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

func member(id, name string) Member {
	return Member{
		File: types.UploadedFile{ID: id, Name: name},
		Key:  normalize.Key(name),
	}
}

// partitionIDs renders a partition as a sorted list of sorted member-ID
// sets, independent of cluster and index order.
func partitionIDs(members []Member, clusters []Cluster) []string {
	var sets []string
	for _, cl := range clusters {
		var ids []string
		for _, i := range cl.Indexes {
			ids = append(ids, members[i].File.ID)
		}
		sort.Strings(ids)
		sets = append(sets, strings.Join(ids, ","))
	}
	sort.Strings(sets)
	return sets
}

func TestPartitionGroupsChaptersOfOneBook(t *testing.T) {
	members := []Member{
		member("a", "NCERT_Class10_Maths_Chapter3_Algebra.pdf"),
		member("b", "NCERT_Class10_Maths_Chapter4_Geometry.pdf"),
		member("c", "NCERT Class10 Maths Chapter 5 Triangles.pdf"),
	}

	clusters := Partition(members, types.EngineConfig{})
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1: %+v", len(clusters), clusters)
	}
	if len(clusters[0].Indexes) != 3 {
		t.Errorf("cluster has %d members, want 3", len(clusters[0].Indexes))
	}
	if clusters[0].Key != "ncert class10 maths" {
		t.Errorf("representative key = %q", clusters[0].Key)
	}
}

func TestPartitionKeepsConventionsApart(t *testing.T) {
	// Two internally consistent publications plus one unrelated file.
	members := []Member{
		member("m1", "NCERT_Class10_Maths_Chapter1_Real_Numbers.pdf"),
		member("m2", "NCERT_Class10_Maths_Chapter2_Polynomials.pdf"),
		member("s1", "ICSE_Class9_Science_Ch2_Matter.pdf"),
		member("s2", "ICSE_Class9_Science_Ch3_Atoms.pdf"),
		member("x", "random_notes.txt"),
	}

	clusters := Partition(members, types.EngineConfig{})
	got := partitionIDs(members, clusters)
	want := []string{"m1,m2", "s1,s2", "x"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("partition = %v, want %v", got, want)
	}
}

func TestPartitionEveryFileInExactlyOneCluster(t *testing.T) {
	members := []Member{
		member("a", "NCERT_Class10_Maths_Chapter3_Algebra.pdf"),
		member("b", "Science Chapter 2.pdf"),
		member("c", "untitled.bin"),
		member("d", "NCERT_Class10_Maths_Chapter4.pdf"),
	}

	clusters := Partition(members, types.EngineConfig{})
	seen := make(map[int]int)
	for _, cl := range clusters {
		for _, i := range cl.Indexes {
			seen[i]++
		}
	}
	if len(seen) != len(members) {
		t.Fatalf("%d of %d files assigned", len(seen), len(members))
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("file %d assigned %d times", i, n)
		}
	}
}

func TestPartitionOrderIndependent(t *testing.T) {
	base := []Member{
		member("a", "NCERT_Class10_Maths_Chapter3_Algebra.pdf"),
		member("b", "NCERT_Class10_Maths_Chapter4_Geometry.pdf"),
		member("c", "ICSE_Class9_Science_Ch2_Matter.pdf"),
		member("d", "ICSE_Class9_Science_Ch3_Atoms.pdf"),
		member("e", "random_notes.txt"),
	}
	want := partitionIDs(base, Partition(base, types.EngineConfig{}))

	permutations := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}
	for _, perm := range permutations {
		shuffled := make([]Member, len(base))
		for i, p := range perm {
			shuffled[i] = base[p]
		}
		got := partitionIDs(shuffled, Partition(shuffled, types.EngineConfig{}))
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("permutation %v: partition = %v, want %v", perm, got, want)
		}
	}
}

func TestPartitionEmptyBatch(t *testing.T) {
	clusters := Partition(nil, types.EngineConfig{})
	if len(clusters) != 0 {
		t.Errorf("got %d clusters for empty batch", len(clusters))
	}
}

func TestPartitionNoSharedTokensNeverMerge(t *testing.T) {
	members := []Member{
		member("a", "alpha_one_doc.pdf"),
		member("b", "beta_two_doc.pdf"), // shares "doc" with a only
		member("c", "gamma_file.pdf"),
		member("d", "delta_sheet.pdf"),
	}

	clusters := Partition(members, types.EngineConfig{})
	for _, cl := range clusters {
		if len(cl.Indexes) == 1 {
			continue
		}
		// Any multi-member cluster must have pairwise token overlap.
		for _, i := range cl.Indexes {
			for _, j := range cl.Indexes {
				if i >= j {
					continue
				}
				if !shareToken(members[i].Key, members[j].Key) {
					t.Errorf("cluster joins %q and %q with no shared tokens",
						members[i].Key, members[j].Key)
				}
			}
		}
	}
}

func shareToken(a, b string) bool {
	set := make(map[string]bool)
	for _, tok := range normalize.Tokens(a) {
		set[tok] = true
	}
	for _, tok := range normalize.Tokens(b) {
		if set[tok] {
			return true
		}
	}
	return false
}

func TestPartitionEmptyKeysStaySingletons(t *testing.T) {
	// Bare numeric-prefix names normalize to empty keys; they carry no
	// series signal and must never cluster with each other.
	members := []Member{
		member("a", "01_Introduction.pdf"),
		member("b", "02_Fundamentals.pdf"),
	}

	clusters := Partition(members, types.EngineConfig{})
	if len(clusters) != 2 {
		t.Errorf("got %d clusters, want 2 singletons", len(clusters))
	}
}

func TestPartitionShortKeyEditFallback(t *testing.T) {
	// "maths" vs "math" share no literal token but are the same book.
	members := []Member{
		member("a", "NCERT_Math_Ch1.pdf"),
		member("b", "NCERT_Maths_Ch2.pdf"),
	}

	clusters := Partition(members, types.EngineConfig{})
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1: %+v", len(clusters), clusters)
	}
}

func TestPartitionShortKeyFallbackKeepsGradesApart(t *testing.T) {
	// "physics class9" and "physics class10" are one edit apart, but the
	// digit tokens carry the grade and must discriminate.
	members := []Member{
		member("a9", "Physics_Class9_Ch1.pdf"),
		member("b9", "Physics_Class9_Ch2.pdf"),
		member("a10", "Physics_Class10_Ch1.pdf"),
		member("b10", "Physics_Class10_Ch2.pdf"),
	}

	clusters := Partition(members, types.EngineConfig{})
	got := partitionIDs(members, clusters)
	want := []string{"a10,b10", "a9,b9"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("partition = %v, want %v", got, want)
	}
}

func TestJaccard(t *testing.T) {
	set := func(toks ...string) map[string]bool {
		m := make(map[string]bool)
		for _, tok := range toks {
			m[tok] = true
		}
		return m
	}

	tests := []struct {
		name string
		a, b map[string]bool
		want float64
	}{
		{"identical", set("x", "y"), set("x", "y"), 1.0},
		{"disjoint", set("x"), set("y"), 0},
		{"both empty", set(), set(), 0},
		{"three of four", set("p", "q", "r", "s"), set("p", "q", "r"), 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("jaccard = %v, want %v", got, tt.want)
			}
		})
	}
}
