// Package catalog models the video catalog aggregate.
//
// Video is the aggregate root. It owns three optional artwork slots (Thumb,
// ThumbHalf, Banner) holding Image values, a primary Media and a Trailer
// tracking encoding progress, and three ordered association lists of
// category, genre, and cast member identifiers. All state is reachable only
// through Video's methods; Media transitions are driven by the owning Video.
//
// Validation is explicit. Mutations never validate, so callers that need a
// consistent record call Validate after mutating and branch on the returned
// *Error kind.
//
// The package does no I/O and does not log. Persistence rebuilds aggregates
// through VideoState and RestoreVideo.
package catalog
