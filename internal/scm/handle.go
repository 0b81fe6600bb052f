package scm

import (
	"sync"

	"svckit/internal/logger"
)

// Handle owns exactly one service control manager token. It is created
// around a token already issued by a successful native call and
// releases it at most once, regardless of how many times Close is
// invoked or on which exit path. Handles must not be copied; ownership
// moves only by pointer handoff.
type Handle struct {
	api   API
	token Token
	once  sync.Once
}

func newHandle(api API, token Token) *Handle {
	return &Handle{api: api, token: token}
}

// Raw borrows the underlying token for exactly one native call. The
// returned value must not be persisted beyond that call.
func (h *Handle) Raw() Token {
	return h.token
}

// Close releases the token. The release status is deliberately
// discarded: Close runs during teardown where no recovery is possible,
// so a failed close is logged at debug level and otherwise swallowed.
func (h *Handle) Close() {
	h.once.Do(func() {
		if err := h.api.CloseServiceHandle(h.token); err != nil {
			log := logger.WithComponent("scm")
			log.Debug().Err(err).Msg("Close service handle failed")
		}
	})
}
