// Command jobly runs the job listings data layer from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(err)
		os.Exit(exitCode(err))
	}
}

// printError writes application errors as JSON and anything else as text.
func printError(err error) {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		_ = utils.PrintJSON(os.Stderr, appErr)
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// exitCode distinguishes caller mistakes from failures.
func exitCode(err error) int {
	switch errs.KindOf(err) {
	case errs.KindInvalidArgument:
		return 2
	case errs.KindNotFound:
		return 3
	case errs.KindAlreadyExists:
		return 4
	default:
		return 1
	}
}
