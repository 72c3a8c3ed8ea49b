package domain

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// InputFingerprint hashes the launch inputs that would participate in
// build-cache fingerprinting: executable path, argument list, and the
// tracked environment subset. Untracked environment keys never alter the
// result.
func InputFingerprint(spec *ExecutionSpec) string {
	h := xxhash.New()

	_, _ = h.WriteString(spec.Executable())
	_, _ = h.Write([]byte{0})

	for _, arg := range spec.Args() {
		_, _ = h.WriteString(arg)
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0})

	tracked := spec.TrackedEnvironment()
	keys := make([]string, 0, len(tracked))
	for k := range tracked {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.Write([]byte{'='})
		_, _ = h.WriteString(tracked[k])
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
