package monitoring

// ProgressLogger returns a per-step observer that logs "<label>: done/total
// (pct%)" through Logf roughly every step percent, and always on the last
// step. step values outside [1, 100] log every call.
func ProgressLogger(label string, step int) func(done, total int) {
	if step < 1 || step > 100 {
		step = 1
	}
	lastPct := -step
	return func(done, total int) {
		if total <= 0 {
			return
		}
		pct := done * 100 / total
		if done < total && pct-lastPct < step {
			return
		}
		lastPct = pct
		Logf("%s: %d/%d (%d%%)", label, done, total, pct)
	}
}
