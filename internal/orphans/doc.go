// Package orphans reconciles the files a media manager knows about with the
// files actually present under a media root.
//
// A Scanner asks a PathLister (normally an arr client) for its canonical
// directories, walks each of them to build the Known set, walks the media root
// to build the Observed set, and computes:
//
//   - Orphaned: Observed minus Known, in walk order.
//   - Exclusive: the symmetric difference of Known and Observed, sorted.
//
// All paths are lowercased before comparison. Report prints the outcome and
// writes the results and exclusive files under an advisory lock.
package orphans
