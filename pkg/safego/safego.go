package safego

import "github.com/caiflower/async-http/pkg/e"

func Go(fn func()) {
	go func() {
		defer e.OnError("safeGo")

		fn()
	}()
}
