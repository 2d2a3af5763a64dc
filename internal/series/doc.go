// Package series approximates π with the Leibniz series
//
//	π = 4 · Σ (-1)ⁿ / (2n+1),  n = 0 … steps-1
//
// split across a fixed pool of workers. The engine is parameterized by a
// PartitionPolicy (how indices are dealt to workers), a SummationPolicy (how
// each worker accumulates its terms) and a Precision (the float width the
// whole computation runs in).
//
// Every worker owns exactly one slot of a results buffer that is allocated
// before any worker starts. Slots are handed out at spawn time as disjoint
// one-element sub-slices, so no synchronization is needed on the buffer;
// the only synchronization point is the join that precedes the combine step.
package series
