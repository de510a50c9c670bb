package tasks

import (
	"time"

	"github.com/mikestefanello/backlite"
)

// retention keeps finished tasks for a day; payloads only survive on failure.
func retention() *backlite.Retention {
	return &backlite.Retention{
		Duration:   24 * time.Hour,
		OnlyFailed: false,
		Data:       &backlite.RetainData{OnlyFailed: true},
	}
}
