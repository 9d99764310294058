// Package main is the entry point for the strand application.
package main

import (
	"github.com/samber/lo"
	"github.com/strand-dl/strand/cmd"
	"github.com/strand-dl/strand/config"
	"github.com/strand-dl/strand/internal/cache"
	"github.com/strand-dl/strand/log"

	// Built-in service integrations register their providers on import.
	_ "github.com/strand-dl/strand/services/example"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background cache maintenance.
	go cache.CollectGarbage()

	cmd.Execute()
}
