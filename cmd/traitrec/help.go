// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(categoryFilesGuide)
	app.Add(colorKeyGuide)
	app.Add(projectsGuide)
	app.Add(traitFilesGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Traitrec requires several files to read and process trait data. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files required in the analysis. This guide explains the
structure of the file, but most of the time, the best and most secure way to
edit or view this file is by using traitrec commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# traitrec project files
	dataset	path
	categories	categories.tab
	colors	colors.tab
	traits	traits.tab
	trees	trees.tab

The valid file types are:

- Display categories. Defined by the dataset keyword "categories". This file
  contains the display category of each trait state. The recommended way to
  add a category file is by using the command 'traitrec trait cats'.
- Color keys. Defined by the dataset keyword "colors". This file contains the
  colors used for each display category when drawing trees. The recommended
  way to add a color key file is by using the command 'traitrec trait colors'.
- Trait observations. Defined by the dataset keyword "traits". This file
  contains the observed trait states of the samples. The recommended way to
  add a trait file is by using the command 'traitrec trait add'.
- Time-calibrated trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. The
  recommended way to add a tree file is by using the command
  'traitrec tree add'.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In traitrec, phylogenetic trees must be time-calibrated and stored in a
tab-delimited file. The advantage of using a tab-delimited file is that it
would be easier to manipulate trees than in traditional newick files; for
example, it would be easier for commands in traitrec, as well as for
third-party applications, to understand the node IDs, that are used in the
reconstruction tables.

The recommended way to interact with time-calibrated trees in a traitrec
project is by using the commands in "traitrec tree".

A tree file is a tab-delimited file with the following columns:

	-tree    for the name of the tree.
	-node    for the ID of the node.
	-parent  for of ID of the parent node (-1 is used for the root).
	-age     the age of the node.
	-taxon   the name of the sample of a terminal node.

Here is an example file:

	# time calibrated phylogenetic tree
	tree	node	parent	age	taxon
	zika	0	-1	2000000
	zika	1	0	0	KU501215
	zika	2	0	1200000
	zika	3	2	0	MF438286
	zika	4	2	0	MF801398

Ages are integers. Trees imported with 'traitrec tree add' from nexus or
newick files store the ages with six decimal places of the time units of the
input tree (for example, an age of 1200000 is 1.2 years for a tree with
branch lengths in years).

The command 'traitrec tree add' also reads nexus files, such as the maximum
clade credibility trees produced by Delphy, BEAST, or TreeAnnotator:

	#NEXUS
	begin trees;
		translate
			1 KU501215,
			2 MF438286,
			3 MF801398
			;
		tree TREE1 = [&R] (1:2.0,(2:0.8,3:0.8)[&posterior=0.98]:1.2);
	end;

Only the trees block is read, comments (in square brackets) are ignored, and
terminal names are taken from the translate table. Newick files are also
accepted, but as newick trees have no name, a name must be given with the
flag --name.

In a traitrec project, the file that contains the trees is indicated with the
"trees" keyword.
	`,
}

var traitFilesGuide = &command.Command{
	Usage: "trait-files",
	Short: "about trait files",
	Long: `
A trait file contains the observed states of a discrete trait (for example,
the country of collection, or the clade) of the samples in the trees.

A trait file is a tab-delimited file with the following columns:

	-taxon   the name of the sample
	-trait   the observed state

Here is an example file:

	taxon	trait
	KU501215	BRA
	KX087101	BRA
	KX087101	COL
	MF438286	DOM
	MF801398	USA

Trait states are taken as is (letter case is preserved). A sample can have
more than one state, in which case any of them is a valid state for the
terminal. Samples are matched with the tree terminals without regard of
letter case. If the terminal names contain additional information (for
example "KU501215|2015-07-01") use the flag --sep of the reconstruction
commands to indicate the separator of the sample name.

Samples without observations can be assigned to a sentinel state (for
example "-" or "Other") that is used in the reconstruction as any other
state.

In a traitrec project, the file that contains the traits is indicated with
the "traits" keyword.
	`,
}

var categoryFilesGuide = &command.Command{
	Usage: "category-files",
	Short: "about category files",
	Long: `
A category file assigns each reconstructed state to a display category (for
example, administrative states to geographic regions). Categories are applied
after the reconstruction, so they do not change the reconstructed states.

A category file is a tab-delimited file with the following columns:

	-state     the trait state
	-category  the display category

Here is an example file:

	state	category
	Abia	SE
	Bayelsa	SS
	Lagos	SW
	Rivers	Rivers

If a category file is used, every reconstructed state must have a category,
otherwise the reconstruction will fail.

In a traitrec project, the file that contains the categories is indicated with
the "categories" keyword.
	`,
}

var colorKeyGuide = &command.Command{
	Usage: "color-keys",
	Short: "about color keys file",
	Long: `
By default, the drawing commands of traitrec use the iridescent color scheme
of Paul Tol for each category. A color key file can be defined to set the
colors of particular categories.

A color key file is a tab-delimited file with the following columns:

	-key    the display category
	-color  a RGB value separated by commas, for example, "125,132,148",
	        or a hexadecimal RGB value, for example, "#7d8494".

Any other columns will be ignored. Here is an example of a color key file:

	key	color	comment
	Asia	204,204,204	light gray
	Europe	#ff0000	red
	North America	0,0,0	black
	Other	255,165,0	orange

In a traitrec project, the file that contains the color keys is indicated with
the "colors" keyword.
	`,
}
