package economy

// SecondsPerHour converts profit/hour into the per-second passive accrual.
const SecondsPerHour = 3600.0

// MaxTapsPerCommand bounds a single tap command. The Mini App batches taps
// client-side and flushes them on a debounce timer; anything above this is a
// malformed or fabricated request.
const MaxTapsPerCommand = 5000

// MaxSettleGap caps how much elapsed time a single settlement credits.
// Anything longer counts as being away, and away time still accrues, but a
// clock skewed far into the future must not mint unbounded balance.
const MaxSettleGapSeconds = 72 * 3600
