package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// A canceled context means the user interrupted the run; the
		// shell already shows that.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "modcabinet:", err)
		}
		os.Exit(1)
	}
}
