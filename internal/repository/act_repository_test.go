package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActRepoMock(t *testing.T) (*ActRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewActRepo(db), mock
}

func actRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "name", "act_type", "location", "price_from", "rating",
		"genres", "image_url", "video_url", "description", "featured", "premium",
	})
}

func TestSearchActsNoFilters(t *testing.T) {
	repo, mock := newActRepoMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM acts WHERE 1=1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("(?s)SELECT .+ FROM acts\\s+WHERE 1=1\\s+ORDER BY premium DESC, featured DESC, id DESC\\s+LIMIT \\? OFFSET \\?").
		WithArgs(20, 0).
		WillReturnRows(actRows().
			AddRow(2, "dj-nova", "DJ Nova", "dj", "Leeds", 400.0, 4.9, "house", "", "", "", true, true).
			AddRow(1, "the-jazz-cats", "The Jazz Cats", "band", "London", 250.0, nil, "jazz", "", "", "", false, false))

	out, total, err := repo.Search(context.Background(), ActSearchQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, out, 2)
	assert.Equal(t, "DJ Nova", out[0].Name)
	require.NotNil(t, out[0].Rating)
	assert.InDelta(t, 4.9, *out[0].Rating, 0.001)
	assert.Nil(t, out[1].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchActsAllFilters(t *testing.T) {
	repo, mock := newActRepoMock(t)
	min, max := 100.0, 500.0

	// Every filter contributes a clause and its args, in declaration order.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM acts WHERE \\(LOWER\\(name\\) LIKE .+ AND LOWER\\(location\\) LIKE \\? AND LOWER\\(act_type\\) LIKE \\? AND price_from >= \\? AND price_from <= \\?").
		WithArgs("%jazz%", "%jazz%", "%jazz%", "%london%", "%band%", min, max).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("(?s)SELECT .+ FROM acts").
		WithArgs("%jazz%", "%jazz%", "%jazz%", "%london%", "%band%", min, max, 10, 10).
		WillReturnRows(actRows().
			AddRow(1, "the-jazz-cats", "The Jazz Cats", "band", "London", 250.0, 4.2, "jazz", "", "", "", false, false))

	q := ActSearchQuery{
		Q: "Jazz", Location: "London", ActType: "Band",
		PriceMin: &min, PriceMax: &max,
		Page: 2, PageSize: 10,
	}
	out, total, err := repo.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, "the-jazz-cats", out[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDOrSlug(t *testing.T) {
	repo, mock := newActRepoMock(t)

	// Numeric path parameter resolves by id.
	mock.ExpectQuery("(?s)SELECT .+ FROM acts WHERE id=\\? LIMIT 1").
		WithArgs(uint64(7)).
		WillReturnRows(actRows().
			AddRow(7, "dj-nova", "DJ Nova", "dj", "Leeds", 400.0, 4.9, "house", "", "", "", true, true))

	a, err := repo.GetByIDOrSlug(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), a.ID)

	// Anything non-numeric resolves by slug.
	mock.ExpectQuery("(?s)SELECT .+ FROM acts WHERE slug=\\? LIMIT 1").
		WithArgs("dj-nova").
		WillReturnRows(actRows().
			AddRow(7, "dj-nova", "DJ Nova", "dj", "Leeds", 400.0, 4.9, "house", "", "", "", true, true))

	a, err = repo.GetByIDOrSlug(context.Background(), "dj-nova")
	require.NoError(t, err)
	assert.Equal(t, "dj-nova", a.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActExists(t *testing.T) {
	repo, mock := newActRepoMock(t)

	mock.ExpectQuery("SELECT 1 FROM acts WHERE id=\\? LIMIT 1").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	ok, err := repo.Exists(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery("SELECT 1 FROM acts WHERE id=\\? LIMIT 1").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	ok, err = repo.Exists(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
