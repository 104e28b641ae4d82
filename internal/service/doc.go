// Package service exposes the video catalog's application operations.
//
// Each VideoService method runs inside one store unit of work: the video is
// loaded, a single domain mutation is applied, and the result is saved.
// Domain errors from the catalog package and ErrNotFound from the store are
// returned wrapped so callers can match them with errors.Is.
package service
