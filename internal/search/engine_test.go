package search

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/snip-dev/snip/internal/snippet"
)

func testSnippet(id, name, content, language string, tags ...string) snippet.Snippet {
	return snippet.Snippet{
		ID:       id,
		Name:     name,
		Content:  content,
		Language: language,
		Tags:     tags,
	}
}

func names(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Snippet.Name
	}
	return out
}

func TestSearch_ExactNameMatchScores100(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "docker-compose", "up -d", "bash"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker-compose"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 100 {
		t.Errorf("score: got %d, want 100", results[0].Score)
	}
	if results[0].Field != FieldName {
		t.Errorf("field: got %q, want %q", results[0].Field, FieldName)
	}
}

func TestSearch_ExactNameMatchCaseInsensitive(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "Docker-Compose", "up -d", "bash"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker-compose"})

	if len(results) != 1 || results[0].Score != 100 {
		t.Fatalf("expected exact match score 100, got %+v", results)
	}
}

func TestSearch_NameSubstringScores95(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "docker-compose-up", "up -d", "bash"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 95 {
		t.Errorf("score: got %d, want 95", results[0].Score)
	}
	if results[0].Field != FieldName {
		t.Errorf("field: got %q, want %q", results[0].Field, FieldName)
	}
}

func TestSearch_TagExactScores90(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "cleanup-script", "rm -rf /tmp/*", "bash", "docker", "cleanup"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 90 {
		t.Errorf("score: got %d, want 90", results[0].Score)
	}
	if results[0].Field != FieldTags {
		t.Errorf("field: got %q, want %q", results[0].Field, FieldTags)
	}
}

func TestSearch_TagSubstringScores80(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "cleanup-script", "rm -rf /tmp/*", "bash", "docker-compose"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker"})

	if len(results) != 1 || results[0].Score != 80 {
		t.Fatalf("expected tag substring score 80, got %+v", results)
	}
}

func TestSearch_ContentSubstringScores85(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "deploy", "uses docker for deployment", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 85 {
		t.Errorf("score: got %d, want 85", results[0].Score)
	}
	if results[0].Field != FieldContent {
		t.Errorf("field: got %q, want %q", results[0].Field, FieldContent)
	}
}

// The scenario from the scoring table: a name substring hit outranks a
// content substring hit.
func TestSearch_NameHitRanksAboveContentHit(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "docker-cleanup", "prune containers", "", "docker"),
		testSnippet("2", "deploy", "uses docker for deployment", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Snippet.Name != "docker-cleanup" || results[0].Score != 95 {
		t.Errorf("first result: got %s (%d), want docker-cleanup (95)",
			results[0].Snippet.Name, results[0].Score)
	}
	if results[1].Snippet.Name != "deploy" || results[1].Score != 85 {
		t.Errorf("second result: got %s (%d), want deploy (85)",
			results[1].Snippet.Name, results[1].Score)
	}
}

func TestSearch_FuzzyNameFallsBelowSubstringTier(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "docke", "x", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "docker"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score <= 0 || results[0].Score >= 90 {
		t.Errorf("fuzzy name score %d should be in (0, 90)", results[0].Score)
	}
}

func TestSearch_ZeroScoreExcluded(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "abc", "def", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "zzzz"})

	if len(results) != 0 {
		t.Errorf("expected no results for zero-confidence match, got %d", len(results))
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	if got := engine.Search(nil, Query{Text: "anything"}); len(got) != 0 {
		t.Errorf("expected empty result for empty corpus, got %d", len(got))
	}
}

func TestSearch_EmptyQueryReturnsAllInBrowseOrder(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "zebra", "x", ""),
		testSnippet("2", "apple", "x", ""),
		testSnippet("3", "Mango", "x", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{})

	if len(results) != len(corpus) {
		t.Fatalf("expected %d results, got %d", len(corpus), len(results))
	}
	want := []string{"apple", "Mango", "zebra"}
	if got := names(results); !reflect.DeepEqual(got, want) {
		t.Errorf("browse order: got %v, want %v", got, want)
	}
	for _, r := range results {
		if r.Field != FieldNone {
			t.Errorf("empty query field: got %q, want %q", r.Field, FieldNone)
		}
		if r.Score != results[0].Score {
			t.Error("empty query should score every snippet uniformly")
		}
	}
}

func TestSearch_EmptyQueryWithTagFilter(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "db-dump", "pg_dump", "bash", "backup"),
		testSnippet("2", "alias-ls", "ls -la", "bash"),
		testSnippet("3", "archive-home", "tar czf", "bash", "backup"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Tag: "backup"})

	want := []string{"archive-home", "db-dump"}
	if got := names(results); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSearch_LanguageFilter(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "hello-go", "fmt.Println", "go"),
		testSnippet("2", "hello-py", "print()", "python"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "hello", Language: "GO"})

	if len(results) != 1 || results[0].Snippet.Name != "hello-go" {
		t.Fatalf("language filter: got %v", names(results))
	}
}

func TestSearch_TagFilterCaseInsensitive(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "db-dump", "pg_dump", "bash", "backup"),
		testSnippet("2", "alias-ls", "ls -la", "bash", "shell"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "a", Tag: "BACKUP"})

	for _, r := range results {
		if !r.Snippet.HasTag("backup") {
			t.Errorf("result %q does not satisfy tag filter", r.Snippet.Name)
		}
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 filtered result, got %d", len(results))
	}
}

func TestSearch_FiltersCombined(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "db-dump", "pg_dump", "bash", "backup"),
		testSnippet("2", "db-dump-py", "dump()", "python", "backup"),
		testSnippet("3", "archive", "tar czf", "bash"),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "dump", Language: "bash", Tag: "backup"})

	if got := names(results); !reflect.DeepEqual(got, []string{"db-dump"}) {
		t.Errorf("combined filters: got %v", got)
	}
}

func TestSearch_LimitTruncatesAfterSort(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "tool-c", "x", ""),
		testSnippet("2", "tool", "x", ""),
		testSnippet("3", "tool-a", "x", ""),
		testSnippet("4", "tool-b", "x", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "tool", Limit: 2})

	if len(results) != 2 {
		t.Fatalf("limit: got %d results, want 2", len(results))
	}
	// Exact match first, then best of the substring hits by name.
	want := []string{"tool", "tool-a"}
	if got := names(results); !reflect.DeepEqual(got, want) {
		t.Errorf("top-limit results: got %v, want %v", got, want)
	}
}

func TestSearch_NegativeLimitYieldsNoResults(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "tool", "x", ""),
	}

	engine := NewEngine(DefaultWeights())
	if got := engine.Search(corpus, Query{Text: "tool", Limit: -1}); len(got) != 0 {
		t.Errorf("negative limit: expected empty result, got %d", len(got))
	}
}

func TestSearch_CaseInsensitiveQueriesAgree(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "docker-cleanup", "prune", "", "docker"),
		testSnippet("2", "deploy", "uses docker", ""),
	}

	engine := NewEngine(DefaultWeights())
	lower := engine.Search(corpus, Query{Text: "docker"})
	upper := engine.Search(corpus, Query{Text: "DOCKER"})

	if !reflect.DeepEqual(lower, upper) {
		t.Errorf("case sensitivity: %v != %v", lower, upper)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("b", "same", "x", ""),
		testSnippet("a", "same", "x", ""),
		testSnippet("c", "other", "same thing", ""),
	}

	engine := NewEngine(DefaultWeights())
	first := engine.Search(corpus, Query{Text: "same"})
	second := engine.Search(corpus, Query{Text: "same"})

	if !reflect.DeepEqual(first, second) {
		t.Error("identical calls produced different output")
	}
}

func TestSearch_TieBreakByNameThenID(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("2", "dup", "x", ""),
		testSnippet("1", "dup", "x", ""),
		testSnippet("3", "apple-dup", "x", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "dup"})

	// "dup" is an exact hit (100); "apple-dup" a substring hit (95).
	// The two exact hits share name "dup", so ID decides.
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Snippet.ID != "1" || results[1].Snippet.ID != "2" {
		t.Errorf("ID tie-break: got %s, %s", results[0].Snippet.ID, results[1].Snippet.ID)
	}
	if results[2].Snippet.Name != "apple-dup" {
		t.Errorf("expected apple-dup last, got %q", results[2].Snippet.Name)
	}
}

func TestSearch_WhitespaceAndUnicodeDegradeGracefully(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "docker-cleanup", "prune", ""),
	}
	engine := NewEngine(DefaultWeights())

	// Padded query trims to the same result.
	padded := engine.Search(corpus, Query{Text: "  docker-cleanup  "})
	if len(padded) != 1 || padded[0].Score != 100 {
		t.Errorf("padded query: got %+v", padded)
	}

	// Garbage never errors, only fails to match.
	for _, q := range []string{"🐳🐳🐳", "\x00\x01\x02", "日本語のクエリ"} {
		_ = engine.Search(corpus, Query{Text: q})
	}
}

func TestSearch_DoesNotMutateCorpus(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "Docker-Cleanup", "PRUNE Containers", "BASH", "Docker"),
	}

	engine := NewEngine(DefaultWeights())
	engine.Search(corpus, Query{Text: "docker"})

	sn := corpus[0]
	if sn.Name != "Docker-Cleanup" || sn.Content != "PRUNE Containers" ||
		sn.Language != "BASH" || sn.Tags[0] != "Docker" {
		t.Errorf("corpus was mutated: %+v", sn)
	}
}

// Snippets with equally long fields: closer text never scores lower.
func TestSearch_MonotonicInSimilarity(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "abcx", "x", ""),
		testSnippet("2", "axyz", "x", ""),
	}

	engine := NewEngine(DefaultWeights())
	results := engine.Search(corpus, Query{Text: "abcd"})

	score := func(name string) int {
		for _, r := range results {
			if r.Snippet.Name == name {
				return r.Score
			}
		}
		return 0
	}
	if score("abcx") < score("axyz") {
		t.Errorf("closer name scored lower: abcx=%d axyz=%d", score("abcx"), score("axyz"))
	}
}

func TestSearch_ZeroValueWeightsFallBackToDefaults(t *testing.T) {
	corpus := []snippet.Snippet{
		testSnippet("1", "docker", "x", ""),
	}

	engine := NewEngine(Weights{})
	results := engine.Search(corpus, Query{Text: "docker"})

	if len(results) != 1 || results[0].Score != 100 {
		t.Fatalf("expected default weights to apply, got %+v", results)
	}
}

func TestSearch_ContentSimilarityCapBoundsWork(t *testing.T) {
	long := make([]byte, 200_000)
	for i := range long {
		long[i] = byte('a' + i%26)
	}

	corpus := []snippet.Snippet{
		testSnippet("1", "wall-of-text", string(long), ""),
	}

	engine := NewEngine(DefaultWeights())
	start := time.Now()
	engine.Search(corpus, Query{Text: "needle that is not present"})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("content similarity took %v, cap not applied", elapsed)
	}
}

func BenchmarkSearch_MissOver5000Snippets(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	corpus := make([]snippet.Snippet, 5000)
	for i := range corpus {
		content := make([]byte, 1024)
		for j := range content {
			content[j] = byte('a' + rng.Intn(26))
		}
		corpus[i] = testSnippet(
			fmt.Sprintf("id-%04d", i),
			fmt.Sprintf("snippet-%04d", i),
			string(content),
			"bash",
			"tag-a", "tag-b",
		)
	}

	engine := NewEngine(DefaultWeights())
	q := Query{Text: "qwzxjv", Limit: 20}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Search(corpus, q)
	}
}
