// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"firrtl/internal/config"
	"firrtl/internal/lsp"
)

const lsName = "firrtl" // Name identifier for the language server

var version = "0.1.0"

var flagConfig = flag.String("config", "", "path to firrtl.yaml (default: nearest firrtl.yaml above the working directory)")

func main() {
	flag.Parse()

	cfg, err := config.Resolve(*flagConfig, ".")
	if err != nil {
		cfg = config.Default()
	}

	// stdout carries the protocol, so logs go to the configured file or stderr
	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)
	log := commonlog.GetLogger("firrtl.lsp")
	if err != nil {
		log.Warningf("ignoring config: %s", err)
	}

	firrtlHandler := lsp.NewFirrtlHandler()

	// debug enables glsp's own protocol logging
	s := server.NewServer(firrtlHandler.Handler(), lsName, cfg.Log.Verbosity > 1)

	log.Infof("Starting FIRRTL LSP server %s...", version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("Error running FIRRTL LSP server: %s", err)
		os.Exit(1)
	}
}
