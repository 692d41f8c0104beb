package keyring

// compare reports whether a and b are equal. The length check returns early;
// lengths are fixed and public at every call site. The byte loop always runs
// to the end.
func compare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}

	return diff == 0
}
