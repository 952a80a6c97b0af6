// Package catalog builds the in-memory catalog index and answers
// keyword and facet queries against it.
//
// An Index is immutable once Build returns. Callers share it between
// goroutines without locking and replace it wholesale on rebuild.
package catalog
