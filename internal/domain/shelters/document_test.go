package shelters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "shelters": [
    {
      "name": "North", "location": "Uptown", "address": "1 Elm St",
      "revenue": 300.5, "adopted_count": 1,
      "animals": [
        {"id": "D1", "type": "Dog", "name": "Rex", "age": 2, "breed": "Lab", "health": "Healthy", "status": "Available"},
        {"id": "C1", "type": "Cat", "name": "Luna", "age": 7, "breed": "Persian", "health": "Healthy", "status": "Adopted"}
      ]
    },
    {"name": "South", "location": "Downtown", "address": "2 Oak St", "revenue": 0, "adopted_count": 0, "animals": []}
  ]
}`

func TestDecodeDocument_PreservesOrder(t *testing.T) {
	items, err := DecodeDocument([]byte(validDoc))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "North", items[0].Name)
	assert.Equal(t, 300.5, items[0].Revenue)
	require.Len(t, items[0].Animals, 2)
	assert.Equal(t, "D1", items[0].Animals[0].ID)
	assert.Equal(t, "C1", items[0].Animals[1].ID)
	assert.True(t, items[0].Animals[1].IsAdopted())

	assert.NotNil(t, items[1].Animals)
	assert.Empty(t, items[1].Animals)
}

func TestDecodeDocument_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		path string
	}{
		{"no shelters key", `{}`, "shelters"},
		{"shelter without revenue", `{"shelters":[{"name":"A","location":"L","address":"X","adopted_count":0,"animals":[]}]}`, "shelters[0].revenue"},
		{"shelter without animals", `{"shelters":[{"name":"A","location":"L","address":"X","revenue":0,"adopted_count":0}]}`, "shelters[0].animals"},
		{"animal without status", `{"shelters":[{"name":"A","location":"L","address":"X","revenue":0,"adopted_count":0,
			"animals":[{"id":"1","type":"Dog","name":"R","age":1,"breed":"B","health":"H"}]}]}`, "shelters[0].animals[0].status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tc.doc))
			require.ErrorIs(t, err, ErrMalformedDocument)
			assert.Contains(t, err.Error(), tc.path)
		})
	}
}

func TestDecodeDocument_InvalidJSONAndTypes(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"shelters": [`))
	assert.ErrorIs(t, err, ErrMalformedDocument)

	_, err = DecodeDocument([]byte(`{"shelters":[{"name":"A","location":"L","address":"X","revenue":"lots","adopted_count":0,"animals":[]}]}`))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestEncodeDocument_KeysAndIndent(t *testing.T) {
	items, err := DecodeDocument([]byte(validDoc))
	require.NoError(t, err)

	out, err := EncodeDocument(items)
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "{\n    \"shelters\": ["), "4-space indent expected, got %q", s[:20])

	// orden de claves del refugio
	order := []string{`"name"`, `"location"`, `"address"`, `"revenue"`, `"adopted_count"`, `"animals"`}
	last := -1
	for _, k := range order {
		idx := strings.Index(s, k)
		require.GreaterOrEqual(t, idx, 0, k)
		assert.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}

	again, err := DecodeDocument(out)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestEncodeDocument_EmptyCollection(t *testing.T) {
	out, err := EncodeDocument(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shelters":[]}`, string(out))
}
