package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(newListContext(t, "/feed")))
	assert.Equal(t, 3, ParsePage(newListContext(t, "/feed?page=3")))
	assert.Equal(t, 1, ParsePage(newListContext(t, "/feed?page=0")))
	assert.Equal(t, 1, ParsePage(newListContext(t, "/feed?page=abc")))
}

func TestSlice(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	first := Slice(items, 1)
	require.Len(t, first, PageSize)
	assert.Equal(t, 0, first[0])

	third := Slice(items, 3)
	require.Len(t, third, 5)
	assert.Equal(t, 20, third[0])

	assert.Empty(t, Slice(items, 4))
	assert.Empty(t, Slice([]int{}, 1))
}

func TestEnvelopeLinks(t *testing.T) {
	c := newListContext(t, "http://api.test/api/v1/feed?page=2")

	page := Envelope(c, 25, 2, []int{10})
	assert.Equal(t, 25, page.Count)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=3")
	require.NotNil(t, page.Previous)
	assert.Contains(t, *page.Previous, "page=1")
}

func TestEnvelopeEdges(t *testing.T) {
	c := newListContext(t, "http://api.test/api/v1/feed")

	page := Envelope(c, 5, 1, []int{1, 2, 3, 4, 5})
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)

	last := Envelope(newListContext(t, "http://api.test/api/v1/feed?page=3"), 25, 3, []int{21})
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
}
