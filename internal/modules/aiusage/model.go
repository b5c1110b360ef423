package aiusage

import "errors"

// ErrQuotaExhausted is returned when a user has no AI generations remaining
// for the current month.
var ErrQuotaExhausted = errors.New("monthly generation quota exhausted")

// DefaultGenerations is the number of AI itinerary generations granted per month.
const DefaultGenerations = 25
