// Package engine contains the core scanning logic for passdig. It walks the
// target tree, gates files through the include/exclude filter and the file
// ceiling, evaluates each file line by line against the compiled detectors,
// and returns findings in traversal order. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
