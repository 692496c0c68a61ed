package main

import (
	"os"

	"github.com/studyroom/backend/core"
)

func main() {
	app := newFocusApp(core.NewConfig(), os.Stdin, os.Stdout)
	err := newRootCmd(app).Execute()
	app.close()
	if err != nil {
		os.Exit(1)
	}
}
