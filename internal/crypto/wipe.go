package crypto

import (
	"crypto/subtle"
	"runtime"
)

// Wipe zeroes each buffer. It is best-effort; copies made elsewhere are not
// reached.
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
		runtime.KeepAlive(b)
	}
}
