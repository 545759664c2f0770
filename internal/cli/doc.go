// Package cli implements the reqsync and reqsyncd command trees.
//
// Every command loads the merged configuration (defaults, environment,
// flags, JSON file), builds a [Runtime] holding the wired services and
// closes it when the command returns.
package cli
