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
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/odyssey-lca/odyssey/odysseyutil"
	"github.com/odyssey-lca/odyssey/search"
)

// Root builds the odyssey command tree: database import|remove|list,
// search, and run.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "odyssey",
		Short: "A life-cycle assessment tool over Ecoinvent-style inventory databases.",
		Long: `odyssey ingests EcoSpold v2 inventory databases, assembles them into
sparse technology/intervention/characterization matrices, and evaluates the
environmental impact of user-supplied activities.

Configuration is read from the ODYSSEY_DATA_DIR environment variable, which
names the directory under which a ".odyssey" data directory is created;
it defaults to the user's home directory.`,
		SilenceUsage: true,
	}

	root.AddCommand(databaseCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(runCmd())
	return root
}

// openIndex opens the search index under the resolved data directory,
// logging the path at debug level the way a cobra PersistentPreRunE would
// in the teacher's CLI.
func openIndex() (string, *search.Index, error) {
	dataDir, err := odysseyutil.DataDir()
	if err != nil {
		return "", nil, err
	}
	if err := odysseyutil.EnsureLayout(dataDir); err != nil {
		return "", nil, err
	}
	idx, err := search.Open(filepath.Join(odysseyutil.SearchIndexDir(dataDir), "index.bleve"))
	if err != nil {
		return "", nil, fmt.Errorf("odyssey: opening search index: %w", err)
	}
	logrus.WithField("data_dir", dataDir).Debug("odyssey: resolved data directory")
	return dataDir, idx, nil
}
