// Package fileops provides bounded, read-only access to the files of a single
// directory.
//
// # Scanning
//
// A FlatScanner is bound to an os.Root for the scanned directory, so every
// open happens inside that boundary: symlinks pointing outside the directory
// fail to resolve instead of leaking files from elsewhere. Scanning is not
// recursive. Only regular files (or symlinks resolving to regular files inside
// the root) are reported; sub-directories, sockets, devices and pipes are
// ignored.
//
//	scanner, err := fileops.OpenFlatScanner("/srv/documents")
//	if err != nil {
//	    return fmt.Errorf("open documents: %w", err)
//	}
//	defer scanner.Close()
//
//	entries, err := scanner.Scan()
//	for _, e := range entries {
//	    if e.Err != nil {
//	        continue // per-file failure, the rest of the scan is still usable
//	    }
//	    data, info, err := scanner.ReadFile(e.Name, 10*1024*1024)
//	    ...
//	}
//
// # Validation
//
// ValidatePathSecurity and ValidateBaseName are static checks that never touch
// the filesystem. ExpandPath resolves a leading "~/".
package fileops
