// Package digester compares rendered content with a file on disk by SHA256
// digest, so the generator can skip rewriting files that have not changed.
package digester
