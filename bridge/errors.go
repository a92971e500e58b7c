package bridge

import "fmt"

// ConnectError is returned when the endpoint reports a crashed session
// while waiting for it to connect. It is fatal to the connect step; the
// caller is expected to abort and surface the detail.
type ConnectError struct {
	Detail string
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("controller failed to connect: %s", e.Detail)
}
