package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeReportBackend/internal/db"
	"tradeReportBackend/models"
)

func TestReportRepository_CreateListDetail(t *testing.T) {
	d, err := db.Open("file:reportrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()
	author, err := NewUserRepository(d).Create(ctx, "admin@x.com", "h")
	require.NoError(t, err)

	repo := NewReportRepository(d)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := repo.Create(ctx, &models.Report{Title: "Weekly", Content: "<p>EURUSD</p>", AuthorID: author.ID})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.Report{Title: "Daily", Content: "<p>GBPUSD</p>", AuthorID: author.ID})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, base.Add(time.Minute), first.CreatedAt)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "admin@x.com", list[0].AuthorEmail)
	assert.Equal(t, second.CreatedAt, list[0].CreatedAt)

	detail, err := repo.GetDetail(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "<p>EURUSD</p>", detail.Content)
	assert.Equal(t, "Weekly", detail.Title)
	assert.Equal(t, "admin@x.com", detail.AuthorEmail)

	none, err := repo.GetDetail(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReportRepository_EmptyListIsNotNil(t *testing.T) {
	d, err := db.Open("file:reportempty?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	list, err := NewReportRepository(d).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestReportRepository_UnknownAuthorRejected(t *testing.T) {
	d, err := db.Open("file:reportfk?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = NewReportRepository(d).Create(context.Background(), &models.Report{Title: "T", Content: "C", AuthorID: 42})
	assert.Error(t, err, "foreign key on author_id")
}
