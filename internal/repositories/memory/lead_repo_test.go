package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesflow/internal/models"
)

func TestLeadRepo_ApplyTransitionAssignsSeq(t *testing.T) {
	repo := NewLeadRepo()
	ctx := context.Background()

	lead := &models.Lead{ID: "l1", StageID: "s1", Status: models.LeadOpen, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, lead))

	for i := 1; i <= 3; i++ {
		rec := &models.TransitionRecord{LeadID: "l1", FromStageID: "s1", ToStageID: "s2"}
		require.NoError(t, repo.ApplyTransition(ctx, lead, rec))
		assert.Equal(t, int64(i), rec.Seq)
	}

	history, err := repo.History(ctx, "l1", 0, 100)
	require.NoError(t, err)
	require.Len(t, history, 3)

	page, err := repo.History(ctx, "l1", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].Seq)
}

func TestLeadRepo_ReturnsCopies(t *testing.T) {
	repo := NewLeadRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Lead{ID: "l1", StageID: "s1"}))

	got, err := repo.GetByID(ctx, "l1")
	require.NoError(t, err)
	got.StageID = "mutated"

	again, err := repo.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "s1", again.StageID)
}

func TestLeadRepo_MissingLead(t *testing.T) {
	repo := NewLeadRepo()

	got, err := repo.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
