package content_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/dailysutra/assets"
	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/content"
	cachesvc "github.com/trezcool/dailysutra/services/cache"
	sqlxrepos "github.com/trezcool/dailysutra/storage/database/sqlx"
	testutil "github.com/trezcool/dailysutra/tests"
)

func seedPack(t *testing.T, svc content.Service) content.SeedResult {
	f, err := assets.FS.Open(assets.ContentPack)
	require.NoError(t, err)
	defer f.Close()

	res, err := svc.Seed(context.Background(), f)
	require.NoError(t, err)
	return res
}

func TestSeedAndQuery(t *testing.T) {
	ctx := context.Background()
	conf := core.NewTestConfig()
	svc := content.NewService(sqlxrepos.NewContentRepository(testutil.PrepareDB(t)), nil, testutil.NewLogger(conf))

	res := seedPack(t, svc)
	assert.Equal(t, content.SeedResult{Sutras: 16, Terms: 17}, res)
	assert.Equal(t, res, seedPack(t, svc), "seeding is idempotent")

	total := 0
	for book := content.FirstBook; book <= content.LastBook; book++ {
		sutras, err := svc.SutrasByBook(ctx, book)
		require.NoError(t, err)
		assert.NotEmpty(t, sutras)
		for i := 1; i < len(sutras); i++ {
			assert.Less(t, sutras[i-1].Number, sutras[i].Number)
		}
		total += len(sutras)
	}
	assert.Equal(t, 16, total)

	for _, book := range []int{0, 5} {
		_, err := svc.SutrasByBook(ctx, book)
		require.Error(t, err)
		assert.Equal(t, content.ErrInvalidBook, errors.Cause(err.(*core.ValidationError).Err))
	}

	terms, err := svc.Glossary(ctx)
	require.NoError(t, err)
	require.Len(t, terms, 17)
	assert.Equal(t, "Abhyāsa", terms[0].Term)
	assert.Equal(t, "Āsana", terms[1].Term, "diacritics do not affect ordering")
}

func TestSeedInvalidPacks(t *testing.T) {
	conf := core.NewTestConfig()
	svc := content.NewService(sqlxrepos.NewContentRepository(testutil.PrepareDB(t)), nil, testutil.NewLogger(conf))

	tests := []struct {
		name string
		pack string
	}{
		{name: "empty", pack: "sutras: []\n"},
		{name: "bad book", pack: "sutras:\n  - book: 5\n    number: 1\n"},
		{name: "missing term", pack: "glossary:\n  - definition: orphan\n"},
		{name: "not yaml", pack: "sutras: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Seed(context.Background(), strings.NewReader(tc.pack))
			assert.Error(t, err)
		})
	}
}

func TestCachedContent(t *testing.T) {
	ctx := context.Background()
	conf := core.NewTestConfig()
	db := testutil.PrepareDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := content.NewService(sqlxrepos.NewContentRepository(db), cachesvc.NewCache(client, conf), testutil.NewLogger(conf))
	seedPack(t, svc)

	sutras, err := svc.SutrasByBook(ctx, 1)
	require.NoError(t, err)
	assert.True(t, mr.Exists("dailysutra:content:sutras:1"))

	// served from the cache
	_, err = db.Exec("DELETE FROM sutras")
	require.NoError(t, err)
	cached, err := svc.SutrasByBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sutras, cached)

	// seeding invalidates the cache
	seedPack(t, svc)
	assert.False(t, mr.Exists("dailysutra:content:sutras:1"))

	// a broken cache falls back to the database
	mr.Close()
	fresh, err := svc.SutrasByBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sutras, fresh)
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, "asana", content.SortKey(" Āsana "))
	assert.Equal(t, "samadhi", content.SortKey("Samādhi"))
	assert.Equal(t, "isvara-pranidhana", content.SortKey("Īśvara-praṇidhāna"))
}

func TestShareText(t *testing.T) {
	ctx := context.Background()
	conf := core.NewTestConfig()
	svc := content.NewService(sqlxrepos.NewContentRepository(testutil.PrepareDB(t)), nil, testutil.NewLogger(conf))
	seedPack(t, svc)

	sutras, err := svc.SutrasByBook(ctx, 1)
	require.NoError(t, err)
	sutra, err := svc.Sutra(ctx, sutras[0].ID)
	require.NoError(t, err)
	assert.Equal(t, sutras[0], sutra)
	assert.True(t, strings.HasPrefix(sutra.ShareText(), "Book 1 1"))
	assert.Contains(t, sutra.ShareText(), "DailySutra.app")

	terms, err := svc.Glossary(ctx)
	require.NoError(t, err)
	term, err := svc.Term(ctx, terms[0].ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(term.ShareText(), term.Term+"\n\n"))

	_, err = svc.Sutra(ctx, "lol")
	assert.Equal(t, content.ErrNotFound, errors.Cause(err))
	_, err = svc.Term(ctx, "lol")
	assert.Equal(t, content.ErrNotFound, errors.Cause(err))
}
