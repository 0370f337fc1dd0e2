package kitcompanion

import "log"

// Verbose logging is opt-in so a healthy startup stays quiet; the feed
// degrade paths report through here rather than surfacing errors.
var verboseMode bool

// SetVerbose toggles verbose logging.
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// VerboseLog logs only when verbose mode is enabled
func VerboseLog(format string, v ...interface{}) {
	if verboseMode {
		log.Printf(format, v...)
	}
}

// FeedLog logs a feed-scoped event, prefixed with the feed name.
func FeedLog(feed, format string, v ...interface{}) {
	VerboseLog("feed "+feed+": "+format, v...)
}
