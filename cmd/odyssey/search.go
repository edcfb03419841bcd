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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	odysearch "github.com/odyssey-lca/odyssey/search"
)

func searchCmd() *cobra.Command {
	var database, location, unit string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search imported databases for an activity by name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, idx, err := openIndex()
			if err != nil {
				return err
			}
			defer idx.Close()

			results, err := idx.SearchForResults(odysearch.Query{
				Text:     args[0],
				Database: database,
				Location: location,
				Unit:     unit,
			})
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, r := range results {
					if err := enc.Encode(r); err != nil {
						return err
					}
				}
				return nil
			}
			for _, r := range results {
				fmt.Printf("%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Database, r.Location, r.Unit)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&database, "database", "", "filter by database name (e.g. Ecoinvent_3.10)")
	cmd.Flags().StringVar(&location, "location", "", "filter by geography")
	cmd.Flags().StringVar(&unit, "unit", "", "filter by reference unit")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit one JSON object per line")
	return cmd
}
