/*
Copyright © 2017 the InMAP authors.
Copyright © 2026 the Odyssey authors.
This file is part of Odyssey.

Odyssey is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Odyssey is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Odyssey.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/odyssey-lca/odyssey/lcarun"
	"github.com/odyssey-lca/odyssey/odysseyutil"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <activity.yaml>",
		Short: "Run an LCA over a YAML activity file and print a CSV impact report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, idx, err := openIndex()
			if err != nil {
				return err
			}
			defer idx.Close()

			loader := odysseyutil.NewCacheLoader(dataDir)
			searcher := odysseyutil.IndexSearcher{Index: idx}

			totals, err := lcarun.Run(args[0], loader, searcher)
			if err != nil {
				return err
			}
			return lcarun.WriteCSV(cmd.OutOrStdout(), totals)
		},
	}
}
