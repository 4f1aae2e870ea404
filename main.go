package main

import (
	"os"

	"github.com/pmkol/sllist/coremain"
	"github.com/pmkol/sllist/mlog"
)

func main() {
	if err := coremain.Run(); err != nil {
		mlog.S().Error(err)
		os.Exit(1)
	}
}
