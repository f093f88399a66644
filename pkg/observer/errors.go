package observer

import "errors"

// ErrObserverStopped reports that an observer's sink has closed.
// Observer.OnEvent has no error result and no code in this module returns
// it; pkg/server's WebSocket observer marks itself closed instead.
var ErrObserverStopped = errors.New("observer: stopped")
