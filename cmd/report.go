package cmd

import (
	"fmt"

	"github.com/AnyUserName/imgpress/internal/pipeline"
)

// logResult summarises a run on stderr when --verbose is set.
func logResult(res *pipeline.Result) {
	if !verbose {
		return
	}
	ratio := float64(0)
	if res.InputBytes > 0 {
		ratio = float64(res.OutputBytes) / float64(res.InputBytes) * 100
	}
	logVerbose("%s (%s, %s) → %s (%s, %s)  %.1f%% of original",
		res.Input, res.SourceFormat, formatBytes(res.InputBytes),
		res.Output, res.Target, formatBytes(res.OutputBytes), ratio)
	switch res.Skipped {
	case pipeline.SkipUnchanged:
		logVerbose("output left untouched: identical content")
	case pipeline.SkipLarger:
		logVerbose("output left untouched: re-encoded file was not smaller")
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
