// Package errs holds the error types shared by the storefront domain, the
// application layer and the adapters.
//
// Every type pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) with a
// struct carrying the details, so callers classify with errors.Is and still get a
// readable message:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: lookups that matched nothing
//   - VersionIsInvalidError: optimistic concurrency conflicts
//   - BusinessRuleError: commands an aggregate refused in its current state
//
// The HTTP adapter maps these sentinels to status codes.
package errs
