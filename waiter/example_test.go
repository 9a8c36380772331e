package waiter_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/LerianStudio/lib-waiter/waiter"
)

func ExampleThrottle() {
	w := waiter.NewThrottle(time.Millisecond)

	for attempt := 1; attempt <= 3; attempt++ {
		if err := w.Wait(); err != nil {
			fmt.Println("wait failed:", err)

			return
		}

		fmt.Println("attempt", attempt)
	}

	// Output:
	// attempt 1
	// attempt 2
	// attempt 3
}

func ExampleExponentialBackoff() {
	w := waiter.NewExponentialBackoff(time.Millisecond, 2.0, 4*time.Millisecond)

	// Stateful strategies fail until Start is called.
	err := w.Wait()
	fmt.Println(errors.Is(err, waiter.ErrNotStarted))

	w.Start()

	for attempt := 1; attempt <= 3; attempt++ {
		if err := w.Wait(); err != nil {
			fmt.Println("wait failed:", err)

			return
		}
	}

	fmt.Println("done")

	// Output:
	// true
	// done
}

func ExampleAwait() {
	w := waiter.NewThrottle(time.Millisecond)

	// AsyncWait never blocks the caller; Await bridges the poll/wake contract
	// back to ordinary blocking code.
	if err := waiter.Await(w.AsyncWait()); err != nil {
		fmt.Println("wait failed:", err)

		return
	}

	fmt.Println("ready")

	// Output:
	// ready
}
