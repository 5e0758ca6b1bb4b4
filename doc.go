// Package terrapath finds least-cost routes across rectangular territories
// whose cells carry a terrain code priced by a cost table.
//
// Under the hood the work is split into small packages:
//
//	territory/    immutable Grid of weighted cells, Coord, neighbour order
//	astar/        best-first search with a stepped path-length penalty
//	terrainfile/  reader for the ';'-separated matrix + cost table format
//	scenario/     YAML/JSON search definitions
//	cmd/terrapath  command-line front end
//
// Quick start:
//
//	tr, _ := terrainfile.Load("valley.csv")
//	g, _ := tr.Grid()
//	res, _ := astar.Search(g, territory.Coord{X: 1, Y: 1}, []territory.Coord{{X: 4, Y: 3}})
//	fmt.Println(res.Path, res.Cost, res.Steps)
//
// Coordinates are 1-based: X is the matrix column and Y the matrix row.
// A Grid is never mutated by a search, so concurrent searches may share it.
package terrapath
