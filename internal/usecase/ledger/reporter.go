package ledger

import (
	"log"

	"github.com/simaogato/inventory-ledger/internal/domain"
)

// NewLogReporter writes every status to logger as one line
// A nil logger uses the standard logger
func NewLogReporter(logger *log.Logger) domain.Reporter {
	if logger == nil {
		logger = log.Default()
	}
	return domain.ReporterFunc(func(status domain.Status) {
		if status.Err != nil {
			logger.Printf("%s (kind=%s undo=%t condition=%q)", status.Message, status.Kind, status.Undo, status.Err)
			return
		}
		logger.Printf("%s (kind=%s undo=%t)", status.Message, status.Kind, status.Undo)
	})
}
