package batch_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FrenchMajesty/geo-compliance/pkg/batch"
	"github.com/FrenchMajesty/geo-compliance/pkg/classifier"
	"github.com/FrenchMajesty/geo-compliance/pkg/tabular"
	"github.com/FrenchMajesty/geo-compliance/pkg/testutil"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stubClassifier echoes the feature back as a verdict and records what it saw
type stubClassifier struct {
	mu       sync.Mutex
	seen     []types.Feature
	delay    func(title string) time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (s *stubClassifier) Classify(ctx context.Context, f types.Feature) types.FinalVerdict {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		old := s.maxSeen.Load()
		if n <= old || s.maxSeen.CompareAndSwap(old, n) {
			break
		}
	}

	if s.delay != nil {
		time.Sleep(s.delay(f.Title))
	}

	s.mu.Lock()
	s.seen = append(s.seen, f)
	s.mu.Unlock()

	return types.FinalVerdict{
		Title:              f.Title,
		NeedsCompliance:    types.VerdictNo,
		Reasoning:          f.SupportingText,
		RelatedRegulations: []string{},
		Confidence:         types.ConfidenceMedium,
	}
}

func featureTable(rows ...[3]string) *tabular.Table {
	table := tabular.New(batch.ColumnTitle, batch.ColumnDescription, batch.ColumnDocuments)
	for _, r := range rows {
		table.Append(map[string]string{
			batch.ColumnTitle:       r[0],
			batch.ColumnDescription: r[1],
			batch.ColumnDocuments:   r[2],
		})
	}
	return table
}

func newRunner(t *testing.T, cfg batch.Config) *batch.Runner {
	t.Helper()
	r, err := batch.NewRunner(cfg)
	require.NoError(t, err)
	return r
}

func TestNewRunner_RequiresClassifier(t *testing.T) {
	_, err := batch.NewRunner(batch.Config{})
	assert.Error(t, err)
}

// Missing Description fails before any row is processed
func TestRun_MissingColumns(t *testing.T) {
	stub := &stubClassifier{}
	r := newRunner(t, batch.Config{Classifier: stub})

	table := tabular.New("Title", "WrongColumn")
	table.Append(map[string]string{"Title": "Feed", "WrongColumn": "x"})

	results, err := r.Run(context.Background(), table)

	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, batch.ErrMissingColumns))

	var verr *batch.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Description"}, verr.Missing)
	assert.Contains(t, err.Error(), "Description")
	assert.Empty(t, stub.seen)
}

func TestValidate_NamesEveryMissingColumn(t *testing.T) {
	err := batch.Validate(tabular.New("Documents"))

	var verr *batch.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Title", "Description"}, verr.Missing)
}

func TestRun_SkipsIncompleteRowsAndTrims(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	stub := &stubClassifier{}
	r := newRunner(t, batch.Config{Classifier: stub, Logger: zap.New(core)})

	table := featureTable(
		[3]string{"  Feed  ", "  Home feed  ", "  notes  "},
		[3]string{"   ", "No title", ""},
		[3]string{"No description", "", ""},
		[3]string{"Chat", "Direct messaging", ""},
	)

	results, err := r.Run(context.Background(), table)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Feed", results[0].Title)
	assert.Equal(t, "Chat", results[1].Title)
	assert.Equal(t, types.Feature{Title: "Feed", Description: "Home feed", SupportingText: "notes"}, stub.seen[0])
	assert.Equal(t, 2, logs.FilterMessage("skipping row: missing title or description").Len())
}

func TestRun_OptionalDocumentsColumn(t *testing.T) {
	stub := &stubClassifier{}
	r := newRunner(t, batch.Config{Classifier: stub})

	table := tabular.New("Title", "Description")
	table.Append(map[string]string{"Title": "Feed", "Description": "Home feed"})

	results, err := r.Run(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "", stub.seen[0].SupportingText)
}

func TestRun_ParallelKeepsInputOrder(t *testing.T) {
	stub := &stubClassifier{
		// Earlier rows finish last
		delay: func(title string) time.Duration {
			return time.Duration(10-int(title[0]-'0')) * 5 * time.Millisecond
		},
	}
	r := newRunner(t, batch.Config{Classifier: stub, Workers: 4})

	var rows [][3]string
	for i := 0; i < 10; i++ {
		rows = append(rows, [3]string{string(rune('0' + i)), "desc", ""})
	}

	results, err := r.Run(context.Background(), featureTable(rows...))
	require.NoError(t, err)

	require.Len(t, results, 10)
	for i, v := range results {
		assert.Equal(t, string(rune('0'+i)), v.Title)
	}
	assert.LessOrEqual(t, stub.maxSeen.Load(), int32(4))
	assert.Greater(t, stub.maxSeen.Load(), int32(1))
}

func TestRun_SequentialByDefault(t *testing.T) {
	stub := &stubClassifier{delay: func(string) time.Duration { return time.Millisecond }}
	r := newRunner(t, batch.Config{Classifier: stub})

	_, err := r.Run(context.Background(), featureTable(
		[3]string{"a", "d", ""}, [3]string{"b", "d", ""}, [3]string{"c", "d", ""},
	))
	require.NoError(t, err)

	assert.Equal(t, int32(1), stub.maxSeen.Load())
	assert.Equal(t, []string{"a", "b", "c"}, []string{stub.seen[0].Title, stub.seen[1].Title, stub.seen[2].Title})
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRunner(t, batch.Config{Classifier: &stubClassifier{}})
	_, err := r.Run(ctx, featureTable([3]string{"a", "d", ""}))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "features.csv")
	output := filepath.Join(dir, "results.csv")

	require.NoError(t, tabular.WriteFile(input, featureTable(
		[3]string{"Age Verification System", "Implement age gates for users under 18", ""},
		[3]string{"Simple Calculator", "Basic mathematical operations", ""},
	)))

	mock := &testutil.MockCompleter{
		CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
			if strings.Contains(user, "Calculator") {
				return "", errors.New("quota exceeded")
			}
			return `{"needs_compliance": "No", "reasoning": "Unclear", "related_regulations": ["COPPA"], "confidence": "medium"}`, nil
		},
	}
	clf, err := classifier.NewClassifier(classifier.Config{Completer: mock})
	require.NoError(t, err)
	r := newRunner(t, batch.Config{Classifier: clf})

	table, err := r.Analyze(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, batch.OutputColumns, table.Columns)
	require.Len(t, table.Rows, 2)

	age := table.Rows[0]
	assert.Equal(t, "Yes", age[batch.ColumnNeedsCompliance])
	assert.Contains(t, age[batch.ColumnReasoning], "Overridden by rule-based analysis")
	assert.Equal(t, `["COPPA"]`, age[batch.ColumnRelatedRegulations])
	assert.Equal(t, `{"age_gate":["age gate","age verification","under 18"]}`, age[batch.ColumnKeywords])

	calc := table.Rows[1]
	assert.Equal(t, "Needs Review", calc[batch.ColumnNeedsCompliance])
	assert.Equal(t, "low", calc[batch.ColumnConfidence])
	assert.Equal(t, "[]", calc[batch.ColumnRelatedRegulations])
	assert.Equal(t, "{}", calc[batch.ColumnKeywords])

	written, err := tabular.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, table, written)

	assert.Equal(t, batch.Summary{Total: 2, Yes: 1, NeedsReview: 1}, batch.Summarize(table))
}

func TestAnalyze_NoOutputPath(t *testing.T) {
	input := filepath.Join(t.TempDir(), "features.csv")
	require.NoError(t, tabular.WriteFile(input, featureTable([3]string{"Feed", "Home feed", ""})))

	r := newRunner(t, batch.Config{Classifier: &stubClassifier{}})
	table, err := r.Analyze(context.Background(), input, "")

	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestAnalyze_MissingColumnsWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "features.csv")
	output := filepath.Join(dir, "results.csv")
	table := tabular.New("Title", "WrongColumn")
	require.NoError(t, tabular.WriteFile(input, table))

	r := newRunner(t, batch.Config{Classifier: &stubClassifier{}})
	_, err := r.Analyze(context.Background(), input, output)

	assert.ErrorIs(t, err, batch.ErrMissingColumns)
	assert.NoFileExists(t, output)
}

func TestSampleTable(t *testing.T) {
	table := batch.SampleTable()

	assert.Len(t, table.Rows, 10)
	assert.NoError(t, batch.Validate(table))
	assert.Equal(t, "Age Verification System", table.Rows[0][batch.ColumnTitle])
}
