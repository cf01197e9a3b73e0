package bot

import (
	"log/slog"
	"strings"

	"github.com/klemjul/nodepulse/internal/llm"
)

const (
	queryPreviewLimit = 50
	replyPreviewLimit = 100
	noResponse        = "No response"
	ellipsis          = "..."
)

var separator = strings.Repeat("─", 60)

// Recorder receives every delivered dialog with the node's reply.
type Recorder interface {
	Record(dialog llm.Dialog, resp llm.Response)
}

// LogRecorder writes a short preview of each interaction.
type LogRecorder struct {
	logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(dialog llm.Dialog, resp llm.Response) {
	var query string
	if last, ok := dialog.Last(); ok {
		query = last.Content
	}
	r.logger.Info("💬 Last query: " + truncate(query, queryPreviewLimit))
	r.logger.Info("🤖 Response: " + truncate(resp.Content(noResponse), replyPreviewLimit))
	r.logger.Info(separator)
}

// truncate cuts s to limit characters and marks the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
