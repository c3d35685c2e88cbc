package watcher

import (
	"path/filepath"
	"time"
)

// DefaultSettleDelay is how long a file must stay unchanged before an event fires.
const DefaultSettleDelay = 500 * time.Millisecond

// Options configures the watcher.
type Options struct {
	// SettleDelay is the quiet period required after the last write.
	SettleDelay time.Duration
	// IgnorePatterns are filepath.Match patterns on the base name, e.g. editor swap files.
	IgnorePatterns []string
}

func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.IgnorePatterns == nil {
		o.IgnorePatterns = []string{"*.swp", "*.tmp", "*~", ".#*"}
	}
}

func (o *Options) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range o.IgnorePatterns {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
