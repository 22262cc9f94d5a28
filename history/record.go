package history

import (
	"fmt"
	"time"

	"github.com/natty-misc/ymd3/media"
)

// Record is one successful extraction preserved in the history.
type Record struct {
	ID          string        `json:"id"`
	Program     string        `json:"program"`
	Result      *media.Result `json:"result"`
	ExtractedAt time.Time     `json:"extracted_at"`
}

func (r *Record) encode() string {
	return fmt.Sprintf("%s (%s)", r.ID, r.Program)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s : %s", r.ID, r.Result)
}
