package store

import (
	"testing"
	"time"

	"github.com/h0rv/ghrs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func createTestResult() domain.SearchResult {
	return domain.SearchResult{
		TotalCount: 237,
		Incomplete: false,
		Items: []domain.Repository{
			{
				ID:        1,
				FullName:  "golang/go",
				URL:       "https://github.com/golang/go",
				Stars:     120000,
				Language:  "Go",
				UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Owner:     domain.Owner{Login: "golang"},
			},
			{
				ID:       2,
				FullName: "charmbracelet/bubbletea",
				URL:      "https://github.com/charmbracelet/bubbletea",
				Stars:    28000,
				Language: "Go",
				Owner:    domain.Owner{Login: "charmbracelet"},
			},
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New()
	st := s.Snapshot()

	assert.Equal(t, domain.SortBestMatch, st.Sort)
	assert.Equal(t, domain.OrderDesc, st.Order)
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.False(t, st.HasQuery())
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
}

func TestCommit_ResetsPage(t *testing.T) {
	s := New()
	s.SetPage(7)
	s.Commit("bubbletea")

	st := s.Snapshot()
	assert.Equal(t, "bubbletea", st.Committed)
	assert.Equal(t, 1, st.Page)
	assert.True(t, st.HasQuery())
}

func TestLifecycle_Success(t *testing.T) {
	s := New()
	s.Commit("go")
	s.ApplyFailure("old failure")

	s.BeginLoading()
	st := s.Snapshot()
	assert.True(t, st.Loading)
	assert.Empty(t, st.Err, "starting a request clears the last failure")
	assert.Equal(t, PhaseLoading, st.Phase)

	s.ApplyResult(createTestResult())
	st = s.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, 237, st.Result.TotalCount)
	assert.Len(t, st.Result.Items, 2)
	assert.Equal(t, 24, st.TotalPages())
}

func TestLifecycle_Failure(t *testing.T) {
	s := New()
	s.Commit("go")
	s.BeginLoading()
	s.ApplyResult(createTestResult())

	s.BeginLoading()
	s.ApplyFailure("GitHub API error (500): boom")

	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, PhaseErrored, st.Phase)
	assert.Equal(t, "GitHub API error (500): boom", st.Err)
	assert.Empty(t, st.Result.Items, "failure clears the result set")
	assert.Zero(t, st.Result.TotalCount)
	assert.Equal(t, 1, st.TotalPages())
}

func TestRejectInput_KeepsLoadingFlag(t *testing.T) {
	s := New()
	s.Commit("go")
	s.BeginLoading()

	s.RejectInput("Please enter a search query.")

	st := s.Snapshot()
	assert.True(t, st.Loading)
	assert.Equal(t, PhaseErrored, st.Phase)
	assert.Equal(t, "go", st.Committed, "committed query survives a rejected submit")
}

func TestRejectInput_MessageSurvivesInFlightResult(t *testing.T) {
	s := New()
	s.Commit("go")
	s.BeginLoading()
	s.RejectInput("Please enter a search query.")

	s.ApplyResult(createTestResult())

	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Len(t, st.Result.Items, 2)
	assert.Equal(t, "Please enter a search query.", st.Err)

	// The next request starts clean
	s.BeginLoading()
	s.ApplyResult(createTestResult())
	assert.Empty(t, s.Snapshot().Err)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New()
	s.ApplyResult(createTestResult())

	st := s.Snapshot()
	require.Len(t, st.Result.Items, 2)
	st.Result.Items[0].FullName = "mutated"

	assert.Equal(t, "golang/go", s.Snapshot().Result.Items[0].FullName)
}

func TestParams(t *testing.T) {
	s := New()
	s.Commit("cli language:go")
	s.SetPage(3)
	s.SetSort(domain.SortUpdated)
	s.SetOrder(domain.OrderAsc)

	p := s.Snapshot().Params()
	assert.Equal(t, domain.SearchParams{
		Query:   "cli language:go",
		Page:    3,
		PerPage: domain.PageSize,
		Sort:    domain.SortUpdated,
		Order:   domain.OrderAsc,
	}, p)
	assert.NoError(t, p.Validate())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "ready", PhaseReady.String())
	assert.Equal(t, "errored", PhaseErrored.String())
}
