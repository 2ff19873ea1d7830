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

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/unityconv/cmd/unityconv/opts"
	"github.com/walteh/unityconv/pkg/index"
	"github.com/walteh/unityconv/pkg/status"
)

// NewIndexCmd creates the index command
func NewIndexCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		id      string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "index <file>",
		Short: "List the objects of a Unity file by id",
		Long: `Index decodes a Unity file (raw, converted text or JSON) and prints one
line per object with its id, type and document number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Errorf("reading %s: %w", args[0], err)
			}

			idx, err := index.Build(cmd.Context(), data)
			if err != nil {
				return errors.Errorf("indexing %s: %w", args[0], err)
			}

			switch {
			case id != "":
				obj, ok := idx.Lookup(id)
				if !ok {
					return errors.Errorf("no object with id %q in %s", id, args[0])
				}
				fmt.Fprintln(ro.Out, status.FormatObject(obj.ID, obj.Type, obj.Position))
			case summary:
				for _, tc := range idx.Types() {
					fmt.Fprintf(ro.Out, "%6d  %s\n", tc.Count, tc.Type)
				}
			default:
				for _, obj := range idx.Objects {
					fmt.Fprintln(ro.Out, status.FormatObject(obj.ID, obj.Type, obj.Position))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "only print the object with this id")
	cmd.Flags().BoolVar(&summary, "types", false, "print object counts per type")

	return cmd
}
