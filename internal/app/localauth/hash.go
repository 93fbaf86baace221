package localauth

import "strconv"

// WeakHash is the local-mode credential hasher: a fast 32-bit rolling
// string hash. It is NOT cryptographic and is acceptable only because
// local mode has no network exposure; it must never be used server-side.
func WeakHash(input string) string {
	var h int32
	for _, r := range input {
		h = (h << 5) - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return "h" + strconv.FormatInt(v, 10)
}
