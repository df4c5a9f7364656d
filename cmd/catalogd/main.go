package main

import (
	"github.com/mediakite/catalogd/internal/cli"
	"github.com/mediakite/catalogd/internal/common/logtrace"
)

func init() {
	logtrace.InitLogger()
}

func main() {
	cli.Execute()
}
