package transcript_test

import (
	"context"
	"io"
	"testing"

	"github.com/jhalonen/pemberton/internal/sqlite"
	"github.com/jhalonen/pemberton/internal/testhelpers"
	"github.com/jhalonen/pemberton/internal/transcript"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *transcript.Repository {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.NewDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return transcript.NewRepository(db, testhelpers.NewLogger(io.Discard))
}

func TestRepository_AppendAndHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Append(ctx, "lady", 1, "Where were you?", "In my chambers."))
	require.NoError(t, repo.Append(ctx, "maid", 2, "What did you see?", "Her Ladyship, sir."))
	require.NoError(t, repo.Append(ctx, "lady", 3, "Any enemies?", "Many, Inspector."))

	history, err := repo.History(ctx, "lady")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 1, history[0].Turn)
	require.Equal(t, "Where were you?", history[0].Question)
	require.Equal(t, "In my chambers.", history[0].Answer)
	require.Equal(t, 3, history[1].Turn)

	history, err = repo.History(ctx, "maid")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "maid", history[0].SuspectID)
}

func TestRepository_History_empty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newTestRepository(t)

	history, err := repo.History(ctx, "student")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestRepository_Append_duplicateTurn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Append(ctx, "lady", 1, "Q", "A"))
	// One exchange per suspect and turn; a duplicate insert must fail loudly
	// instead of silently corrupting the transcript.
	require.Error(t, repo.Append(ctx, "lady", 1, "Q again", "A again"))
}
