package presetreq

import (
	"github.com/joy-dx/presetreq/dto"
)

// publishRequestUpdate is the unified notification function. The state map
// holds the latest notification per URL.
func (s *NetSvc) publishRequestUpdate(state dto.RequestNotification) {
	s.requestState.Set(state.URL, state)

	s.muListeners.Lock()
	listeners := append([]chan dto.RequestNotification(nil), s.listenersByURL[state.URL]...)
	s.muListeners.Unlock()

	isTerminal := state.Status == dto.COMPLETE || state.Status == dto.ERROR

	for _, ch := range listeners {
		if isTerminal {
			// Avoid deadlock: do NOT hold muListeners while sending.
			select {
			case ch <- state:
			default:
				// Buffer full: fall back to blocking send in a goroutine.
				go func(c chan dto.RequestNotification, n dto.RequestNotification) {
					// Best effort: if unsub closed the channel, recover.
					defer func() { _ = recover() }()
					c <- n
				}(ch, state)
			}
		} else {
			// Pending updates can be dropped
			select {
			case ch <- state:
			default:
			}
		}
	}
}
