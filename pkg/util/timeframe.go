package util

import "time"

// TimeframeDuration maps a candle resolution name to its bucket width.
// Unknown names fall back to 15 minutes.
func TimeframeDuration(tf string) time.Duration {
	switch tf {
	case "1m":
		return time.Minute
	case "15m":
		return 15 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	default:
		return 15 * time.Minute
	}
}

// AlignRange truncates a time range to the bucket boundaries of tf.
func AlignRange(from, to time.Time, tf string) (time.Time, time.Time) {
	d := TimeframeDuration(tf)
	return from.Truncate(d), to.Truncate(d)
}
