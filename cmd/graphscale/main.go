// Command graphscale is the CLI front door for the graph engine: it
// imports Arrow-fronted node/edge tables into an in-memory graph store,
// runs Pregel-style node-centric programs against it, drives pipeline
// descriptors through their declared phases, and inspects the progress
// task hierarchy left behind by a run.
package main

import "github.com/graphscale/graphscale/cmd/graphscale/cmd"

func main() {
	cmd.Execute()
}
