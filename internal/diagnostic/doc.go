// Package diagnostic provides structured warnings, errors, and
// per-item skip reports for the GUID correction pipeline.
//
// Key capabilities:
//   - Unreadable or malformed descriptor reports
//   - Duplicate stem reports with losing candidates
//   - Identity and chained mapping warnings
//   - Run-level configuration errors
package diagnostic
