package main

import (
	"errors"
	"fmt"
	"os"

	appErrors "savekeeper/internal/errors"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, errOperationFailed) {
			// The outcome has been printed already.
			os.Exit(1)
		}
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
