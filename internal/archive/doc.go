// Package archive packs a directory tree into a single container file and
// unpacks it again.
//
// Two container formats are registered, "tar" and "zip". Both implement
// Codec, so a project can be restored from either:
//
//	tree, err := archive.Collect(root, "trigo", archive.CollectOptions{})
//	codec, err := archive.Lookup("zip")
//	err = archive.Write("/backups/trigo.zip", codec, tree)
//
//	x, err := archive.Extract("/backups/trigo.zip", "/restore")
//	defer x.Cleanup()
//
// A container holds exactly one top-level entry named after the tree.
package archive
