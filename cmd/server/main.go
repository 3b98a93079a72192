/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Binary server serves the CRI palette: data queries at /GetData and swatch
// pages at /swatches.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cri/cricolors/logging"
	"github.com/cri/cricolors/service"
)

var (
	port      = flag.Int("port", 7410, "Port to serve palette clients on")
	cacheSize = flag.Int("cache_size", 128, "Number of resolved colors to cache")
	logLevel  = flag.String("log_level", "info", "Minimum log level: debug, info, warn or error")
)

func main() {
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logging.SetLogger(logger)

	svc, err := service.New(*cacheSize)
	if err != nil {
		logger.Error("failed to create palette service", "err", err)
		os.Exit(1)
	}
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("serving palette", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}
