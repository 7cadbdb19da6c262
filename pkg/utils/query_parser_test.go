package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Equal(t, 1, filter.Page)
	assert.Empty(t, filter.Filter)
	assert.Empty(t, filter.Sort)
	assert.False(t, filter.WithPagination)
}

func TestParseFilterBracketKeys(t *testing.T) {
	query := url.Values{
		"filter[nationality]":     {"Indian"},
		"filter[passport_status]": {"expiring"},
		"search":                  {"  ahmed  "},
	}
	filter := ParseFilterFromQuery(query)

	assert.Equal(t, "Indian", filter.Filter["nationality"])
	assert.Equal(t, "expiring", filter.Filter["passport_status"])
	assert.Equal(t, "ahmed", filter.Search)
}

func TestParseFilterSortDirection(t *testing.T) {
	asc := ParseFilterFromQuery(url.Values{"sort": {"name_en"}})
	assert.Equal(t, map[string]string{"name_en": "asc"}, asc.Sort)

	desc := ParseFilterFromQuery(url.Values{"sort": {"-passport_expiry"}})
	assert.Equal(t, map[string]string{"passport_expiry": "desc"}, desc.Sort)
}

func TestParseFilterPageComputesOffset(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"10"}})

	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 20, filter.Offset)
}

func TestParseFilterOffsetWinsOverPage(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"offset": {"40"}, "page": {"9"}, "limit": {"20"}})

	assert.Equal(t, 40, filter.Offset)
	assert.Equal(t, 3, filter.Page)
}

func TestParseFilterIgnoresBadNumbers(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"limit": {"-5"}, "page": {"zero"}})

	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 1, filter.Page)
}
