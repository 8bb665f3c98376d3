package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("boardly exited with error")
		os.Exit(1)
	}
}
