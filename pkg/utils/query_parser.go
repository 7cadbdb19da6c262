package utils

import (
	"net/url"
	"strconv"
	"strings"

	"hr-system/pkg/types"
)

// ParseFilterFromQuery maps the list-endpoint query conventions onto a Filter:
// filter[key]=value pairs, ?search=, ?sort=-field, limit/offset/page.
func ParseFilterFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Filter: make(map[string]string),
		Sort:   make(map[string]string),
		Limit:  20,
		Page:   1,
	}

	for key, values := range query {
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") && len(values) > 0 {
			filterKey := key[7 : len(key)-1]
			filter.Filter[filterKey] = values[0]
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
			if filter.Limit > 0 {
				filter.Page = (o / filter.Limit) + 1
			}
		}
	}
	// page applies only when offset is not given
	if pageStr := query.Get("page"); pageStr != "" && filter.Offset == 0 {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
			filter.Offset = (p - 1) * filter.Limit
		}
	}

	filter.Search = strings.TrimSpace(query.Get("search"))
	filter.WithPagination = query.Get("withPagination") == "true"

	if sort := query.Get("sort"); sort != "" {
		if strings.HasPrefix(sort, "-") {
			filter.Sort[sort[1:]] = "desc"
		} else {
			filter.Sort[sort] = "asc"
		}
	}
	return filter
}
