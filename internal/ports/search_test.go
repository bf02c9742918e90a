package ports

import (
	"context"
	"fmt"
	"lcl_quote/internal/cache"
	"lcl_quote/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPorts = []model.Port{
	{Name: "Durban", Country: "South Africa", Code: "ZADUR"},
	{Name: "Jebel Ali (Dubai)", Country: "United Arab Emirates", Code: "AEJEA"},
	{Name: "Dubai", Country: "United Arab Emirates", Code: "AEDXB"},
	{Name: "Shanghai", Country: "China", Code: "CNSHA"},
	{Name: "Hamburg", Country: "Germany", Code: "DEHAM"},
}

func codes(ports []model.Port) []string {
	out := make([]string, 0, len(ports))
	for _, p := range ports {
		out = append(out, p.Code)
	}
	return out
}

func TestSearch_EmptyQuery(t *testing.T) {
	assert.Empty(t, Search("", testPorts))
	assert.Empty(t, Search("   ", testPorts))
	assert.NotNil(t, Search("", testPorts))
}

func TestSearch_Ranking(t *testing.T) {
	result := Search("dub", testPorts)

	// Dubai - префикс (90), Jebel Ali (Dubai) - подстрока (80),
	// Durban - только подпоследовательность d-u-b (50)
	assert.Equal(t, []string{"AEDXB", "AEJEA", "ZADUR"}, codes(result))
}

func TestSearch_ExactCodeFirst(t *testing.T) {
	result := Search("cnsha", testPorts)
	require.NotEmpty(t, result)
	assert.Equal(t, "CNSHA", result[0].Code)
}

func TestSearch_MatchesCountry(t *testing.T) {
	result := Search("germany", testPorts)
	require.NotEmpty(t, result)
	assert.Equal(t, "DEHAM", result[0].Code)
}

func TestSearch_DiscardsWeakMatches(t *testing.T) {
	// Одна совпавшая буква дает 10 баллов и отбрасывается
	assert.Empty(t, Search("zq", []model.Port{{Name: "Zeebrugge", Country: "Belgium", Code: "BEZEE"}}))
}

func TestSearch_CapsResults(t *testing.T) {
	many := make([]model.Port, 0, 25)
	for i := 0; i < 25; i++ {
		many = append(many, model.Port{Name: fmt.Sprintf("Dubai Terminal %d", i), Country: "UAE", Code: fmt.Sprintf("AE%03d", i)})
	}
	result := Search("dub", many)
	assert.Len(t, result, MaxResults)
	// При равных баллах сохраняется исходный порядок
	assert.Equal(t, "AE000", result[0].Code)
	assert.Equal(t, "AE009", result[9].Code)
}

func TestSearch_DefaultDirectory(t *testing.T) {
	dir, err := Load("")
	require.NoError(t, err)
	assert.True(t, dir.Has("AEJEA"))
	assert.True(t, dir.Has("CNSHA"))
	assert.False(t, dir.Has("aejea"))

	result := Search("dub", dir.All())
	require.NotEmpty(t, result)
	assert.LessOrEqual(t, len(result), MaxResults)
	assert.Equal(t, "AEDXB", result[0].Code)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/ports.json")
	assert.Error(t, err)
}

func TestSearcher_UsesCache(t *testing.T) {
	c := cache.NewLRU[[]model.Port]("ports-test", 10)
	s := NewSearcher(NewDirectory(testPorts), c)
	ctx := context.Background()

	first := s.Search(ctx, " Dub ")
	assert.Equal(t, 1, c.Len())

	cached, ok := c.Get(ctx, "dub")
	require.True(t, ok)
	assert.Equal(t, first, cached)

	assert.Equal(t, first, s.Search(ctx, "DUB"))
	assert.Equal(t, 1, c.Len())

	s.WarmUp(ctx, []string{"sha", "ham"})
	assert.Equal(t, 3, c.Len())
}
