package postgres

import "testing"

func TestChunkRows(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}

	chunks := chunkRows(rows, 2)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 2 || len(chunks[1]) != 2 || len(chunks[2]) != 1 {
		t.Fatalf("chunk sizes mismatch: %v", chunks)
	}

	// Order survives chunking; parallel chunks must not reorder rows
	// relative to their chunk.
	var flat []int
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	for i, v := range flat {
		if v != rows[i] {
			t.Fatalf("order not preserved: %v", flat)
		}
	}
}

func TestChunkRowsEmpty(t *testing.T) {
	if got := chunkRows([]int(nil), 10); got != nil {
		t.Fatalf("empty input must yield no chunks: %v", got)
	}
}

func TestChunkRowsBadSizeFallsBack(t *testing.T) {
	rows := make([]int, DefaultChunkSize+1)
	chunks := chunkRows(rows, 0)
	if len(chunks) != 2 {
		t.Fatalf("non-positive size must fall back to the default: %d chunks", len(chunks))
	}
}

func TestStatsForChunkAppliedOnce(t *testing.T) {
	stats := []int{1, 2, 3}

	// Across all chunks of a split write, the delta set is carried by
	// exactly one transaction.
	var applied int
	for chunk := 0; chunk < 4; chunk++ {
		applied += len(statsForChunk(chunk, stats))
	}
	if applied != len(stats) {
		t.Fatalf("deltas applied %d times across chunks, want %d", applied, len(stats))
	}
	if got := statsForChunk(statsOwnerChunk, stats); len(got) != len(stats) {
		t.Fatalf("owner chunk must carry the full delta set: %v", got)
	}
	if got := statsForChunk(statsOwnerChunk+1, stats); got != nil {
		t.Fatalf("sibling chunks must carry nothing: %v", got)
	}
}

func TestChunkPlanCarrierChunk(t *testing.T) {
	// No rows but a delta set still needs one transaction to apply it.
	plan := chunkPlan([][]int(nil), true)
	if len(plan) != 1 || len(plan[0]) != 0 {
		t.Fatalf("expected a single empty carrier chunk: %v", plan)
	}
	if got := statsForChunk(0, []int{7}); len(got) != 1 {
		t.Fatalf("carrier chunk must apply the deltas: %v", got)
	}

	if plan := chunkPlan([][]int(nil), false); plan != nil {
		t.Fatalf("nothing to write must yield no chunks: %v", plan)
	}

	rows := [][]int{{1}, {2}}
	if got := chunkPlan(rows, true); len(got) != 2 || got[0][0] != 1 {
		t.Fatalf("row chunks must pass through unchanged: %v", got)
	}
}

func TestChunkSizeOverride(t *testing.T) {
	s := &Store{opts: Options{
		ChunkSize:       100,
		TableChunkSizes: map[string]int{"hyperion_swaps": 25, "trades": 0},
	}}

	if got := s.chunkSize("hyperion_swaps"); got != 25 {
		t.Fatalf("override not applied: %d", got)
	}
	if got := s.chunkSize("trades"); got != 100 {
		t.Fatalf("zero override must be ignored: %d", got)
	}
	if got := s.chunkSize("messages"); got != 100 {
		t.Fatalf("default not applied: %d", got)
	}
}
