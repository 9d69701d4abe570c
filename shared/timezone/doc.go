// Package timezone provides timezone utilities for the application.
//
// Timestamps (created_at, actual check-in/out) are produced with Now and rendered with Format in the
// application timezone configured by APP_TIMEZONE.
//
// Stay dates (check-in and check-out) are calendar dates. ParseDate and FormatDate keep them at UTC
// midnight so that iterating nights with AddDate never crosses a daylight saving boundary.
package timezone
