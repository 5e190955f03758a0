// Package lazywalk provides a filtered, depth-bounded, lazy recursive
// directory traversal.
//
// A Config is validated and its root canonicalized once by NewConfig; every
// traversal started from it re-reads the filesystem from scratch:
//
//	opts := lazywalk.DefaultOptions()
//	opts.Pattern = `\.go$`
//	opts.MaxDepth = -1 // unlimited
//	cfg, err := lazywalk.NewConfig("/src", opts)
//	if err != nil {
//		return err // errs.InvalidInput or errs.IOFailure
//	}
//	for path, err := range cfg.Paths() {
//		if err != nil {
//			return err // listing failed; paths seen so far are still valid
//		}
//		fmt.Println(path)
//	}
//
// Entries come out in pre-order: each entry is produced before the subtree
// below it, and that subtree is finished before the next sibling. Sibling
// order is whatever the directory listing returns.
//
// Depth counts descents from the root, whose direct children are at depth 0.
// A directory at depth d is entered when d < MaxDepth or MaxDepth < 0.
//
// Entries that disappear between a listing and their type query are skipped
// silently. A directory that cannot be listed ends the traversal with an
// errs.IOFailure.
//
// Symlinks are not followed unless Options.FollowSymlinks is set, and then
// only Options.CycleGuard protects an unbounded walk from link cycles.
package lazywalk
