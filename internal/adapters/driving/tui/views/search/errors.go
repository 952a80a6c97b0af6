package search

import "errors"

// ErrNoCatalogService indicates that no catalog service was provided.
var ErrNoCatalogService = errors.New("catalog service is required")
