// SPDX-License-Identifier: MIT

// Package report renders engine results for the command line: go-pretty
// tables, YAML documents, CSV sample files and PNG plots.
package report
