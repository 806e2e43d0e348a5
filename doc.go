/*
Package lifsim provides a small synchronous digital simulation engine and the
plumbing needed to describe clocked cores as composable parts wired together
with pin connection strings.

The engine drives a single clock domain. Wire states are double buffered:
every component reads the previous step's frame and writes the next one, so
update order never matters and a simulation run is fully deterministic. A
clock cycle spans a fixed number of steps; clocked parts latch their state on
the rising edge (AtTick) and combinational parts settle during the remaining
steps of the cycle. External drivers apply stimulus between cycles and sample
outputs strictly after the edge.

The LIF neuron core built on top of this engine lives in the lif subpackage,
and the cycle-stepped verification driver in the bench subpackage.
*/
package lifsim
