package usage

import (
	"log/slog"

	"github.com/raterudder/solarsizer/pkg/log"
)

func init() {
	log.SetDefaultLogLevel(slog.LevelError)
}
