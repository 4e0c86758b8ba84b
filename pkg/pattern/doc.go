// Package pattern implements the cellular pattern synthesis pipeline.
//
// The pipeline turns a validated [Config] into a set of closed cell polygons:
//
//  1. Point synthesis: one of three strategies ([JitterGrid], [Sunflower],
//     [PoissonDisc]) produces seed points inside the boundary rectangle.
//  2. Lloyd relaxation: optional iterations move each seed toward the
//     centroid of its Voronoi region for a more uniform distribution.
//  3. Voronoi construction: a diagram is computed over the seed points and
//     finite regions are extracted as raw polygons.
//  4. Cell shaping: regions are clipped to the boundary and shrunk about
//     their centroids to leave inter-cell gaps.
//  5. Text masking: an optional text silhouette is subtracted from the
//     cell set.
//
// Every stage is a pure function of its inputs plus an explicit random
// generator handle; no package-level state is read or mutated, so
// independent runs can execute concurrently without coordination.
//
// Coordinates are millimeters throughout. Unit conversion to micrometers
// happens only at export time (see the export package).
package pattern
