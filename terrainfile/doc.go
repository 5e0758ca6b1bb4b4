// Package terrainfile reads territory descriptions: a matrix of terrain codes
// followed by the cost table that prices each code.
//
// Format (';'-separated, one record per line):
//
//	1;1;2;3          ← matrix rows, integer terrain codes
//	2;1;1;3
//	;;;              ← any line starting with ';' ends the matrix
//	Code;Name;Cost   ← header, ignored
//	1;Road;1.0       ← cost rows: code;name;cost
//	2;Forest;2.5
//
// Blank lines are ignored. A second ';'-line after the cost table ends it;
// anything after that is ignored.
//
// Errors (sentinel):
//
//   - ErrNoMatrix:      no matrix rows before the terminator or EOF.
//   - ErrNoCostTable:   terminator or header line missing.
//   - ErrMalformedLine: a code, name or cost could not be parsed (wrapped with the line number).
//   - ErrDuplicateCode: a code appears twice in the cost table.
//
// Shape and pricing checks (rectangular rows, every code priced) are left to
// territory.NewGrid, reachable through Territory.Grid.
package terrainfile
