// Package content defines the record shapes persisted by the flat-file
// stores: weekly projects, gallery experiments, and the work-in-progress
// idea list, plus id-sequence and tag helpers shared by the admin surface.
package content
