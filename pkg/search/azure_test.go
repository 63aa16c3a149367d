package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureClient_Search(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		gotVersion = r.URL.Query().Get("api-version")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[{"id":"vineda_5696","name":"Vineda","price":1499.9,"color":["Napa Siyah"],"@search.score":2.5}]}`))
	}))
	defer srv.Close()

	c := NewAzureClient(srv.URL+"/", "secret", "2023-11-01", map[Collection]string{Products: "mftleather"})

	hits, err := c.Search(context.Background(), Request{
		Collection:   Products,
		Text:         "id:vin* OR name:vin*",
		SearchFields: []string{"id", "name"},
		QueryType:    QueryFull,
		Mode:         ModeAny,
		Top:          10,
	})
	require.NoError(t, err)

	assert.Equal(t, "/indexes/mftleather/docs/search", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "2023-11-01", gotVersion)
	assert.Equal(t, "id:vin* OR name:vin*", gotBody["search"])
	assert.Equal(t, "id,name", gotBody["searchFields"])
	assert.Equal(t, "full", gotBody["queryType"])
	assert.Equal(t, "any", gotBody["searchMode"])
	assert.EqualValues(t, 10, gotBody["top"])
	assert.NotContains(t, gotBody, "filter")

	require.Len(t, hits, 1)
	assert.Equal(t, "vineda_5696", hits[0].String("id"))
	assert.Equal(t, "1499.9", hits[0].String("price"))
	assert.Equal(t, []string{"Napa Siyah"}, hits[0].Strings("color"))
	score, ok := hits[0].Score()
	assert.True(t, ok)
	assert.InDelta(t, 2.5, score, 1e-9)
}

func TestAzureClient_EmptyTextMatchesAll(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	c := NewAzureClient(srv.URL, "k", "v", map[Collection]string{Products: "p"})
	hits, err := c.Search(context.Background(), Request{Collection: Products, Filter: EqualsFilter("id", "retro_2660"), Top: 5})

	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, "*", gotBody["search"])
	assert.Equal(t, "id eq 'retro_2660'", gotBody["filter"])
}

func TestAzureClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"denied"}`))
	}))
	defer srv.Close()

	c := NewAzureClient(srv.URL, "k", "v", map[Collection]string{Products: "p"})

	_, err := c.Search(context.Background(), Request{Collection: Products, Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")

	_, err = c.Search(context.Background(), Request{Collection: Policies, Text: "x"})
	assert.Error(t, err, "unmapped collection")
}

func TestHit_Accessors(t *testing.T) {
	h := Hit{"color": "Napa Mavi", "empty": "", "n": 3}

	assert.Equal(t, []string{"Napa Mavi"}, h.Strings("color"))
	assert.Nil(t, h.Strings("empty"))
	assert.Nil(t, h.Strings("missing"))
	assert.Equal(t, "3", h.String("n"))
	assert.Equal(t, "", h.String("missing"))

	_, ok := h.Score()
	assert.False(t, ok)
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, "'O''Neil'", ODataLiteral("O'Neil"))
	assert.Equal(t, "color/any(c: c eq 'A') or color/any(c: c eq 'B')", AnyOfFilter("color", []string{"A", "B"}))
	assert.Equal(t, `a\:b\*`, EscapeLucene("a:b*"))
	assert.Equal(t, "çanta", EscapeLucene("çanta"))
}

func TestSubstringPattern(t *testing.T) {
	assert.Equal(t, "/.*vine.*/", SubstringPattern("vine"))
	assert.Equal(t, `/.*a\.b.*/`, SubstringPattern("a.b"))
}
