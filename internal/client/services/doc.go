// Package services holds the client's sync services: folder, diary and
// feed operations that try the backend first and fall back to the local
// Record Store, plus health probing and snapshot persistence.
//
// Every service is an explicit object built once per session and handed to
// the presentation layer. Creates never fail from the caller's point of
// view: they return a models.Result whose State says whether the server
// confirmed the record. Reads that may fail visibly (folder detail, diary
// fetch) return typed errors instead.
package services

import (
	"context"
	"time"
)

// Timeouts bounds the individual backend calls. A zero value means no
// bound; Upload is zero by default.
type Timeouts struct {
	List   time.Duration
	Create time.Duration
	Detail time.Duration
	Health time.Duration
	Upload time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		List:   15 * time.Second,
		Create: 10 * time.Second,
		Detail: 10 * time.Second,
		Health: 10 * time.Second,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
