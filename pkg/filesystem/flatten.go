package filesystem

import (
	"os"
	"path/filepath"
)

// hoistChildren moves every child of the specified wrapper directory into the
// wrapper's parent, removes the then-empty wrapper, and finally resolves any
// name collisions. A collision arises when a child's name already exists in
// the parent (typically the wrapper itself); the colliding child is first
// moved to a collision-free temporary name and renamed to its final name once
// the wrapper is gone.
func hoistChildren(wrapper string) error {
	parent := filepath.Dir(wrapper)

	// Enumerate the wrapper's children.
	entries, err := ReadDirectory(wrapper)
	if err != nil {
		return err
	}

	// Move children up one level, deferring collisions.
	type deferredRename struct {
		temporary string
		final     string
	}
	var collisions []deferredRename
	for _, entry := range entries {
		from := filepath.Join(wrapper, entry.Name())
		to := filepath.Join(parent, entry.Name())

		exists, err := Exists(to)
		if err != nil {
			return err
		}
		if !exists {
			if err := Rename(from, to); err != nil {
				return err
			}
			continue
		}

		// The destination name is taken, so park the child under a
		// collision-free temporary name and record the rename for later.
		temporary, err := FindAvailablePath(to)
		if err != nil {
			return err
		}
		if err := Rename(from, temporary); err != nil {
			return err
		}
		collisions = append(collisions, deferredRename{temporary, to})
	}

	// Remove the now-empty wrapper directory.
	if err := RemoveEmptyDirectory(wrapper); err != nil {
		return err
	}

	// Resolve deferred renames now that the wrapper no longer occupies its
	// name.
	for _, collision := range collisions {
		if err := Rename(collision.temporary, collision.final); err != nil {
			return err
		}
	}

	// Success.
	return nil
}

// FlattenRoot removes redundant wrapping directories from the specified root.
// While the root contains exactly one entry and that entry is a directory,
// the directory's children are hoisted into the root and the wrapper is
// removed. Applying it to a tree with no single-child wrapper leaves the tree
// unchanged.
func FlattenRoot(root string) error {
	for {
		// Enumerate the root's entries.
		entries, err := ReadDirectory(root)
		if err != nil {
			return err
		}

		// An empty root, a root with multiple entries, or a root whose single
		// entry isn't a directory is already flat.
		if len(entries) != 1 {
			return nil
		}
		only := entries[0]
		if !only.IsDir() || only.Type()&os.ModeSymlink != 0 {
			return nil
		}

		// Hoist the wrapper's children and loop in case wrappers were nested.
		if err := hoistChildren(filepath.Join(root, only.Name())); err != nil {
			return err
		}
	}
}
