// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func main() {
	ctx := setupLogging().WithContext(context.Background())

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err.Error())
		os.Exit(1)
	}
}

// setupLogging sends structured logs to stderr so stdout stays for results
func setupLogging() zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
