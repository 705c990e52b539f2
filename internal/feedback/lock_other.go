//go:build !unix

package feedback

import "os"

// Without flock only the in-process mutex serializes appends.
func lockFile(f *os.File) error { return nil }

func unlockFile(f *os.File) error { return nil }
