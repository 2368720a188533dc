package merge

// ConflictMarkers renders a conflicted file's replacement contents,
// substituting an empty slice for whichever side lacks the file
// (spec.md §4.9, testable property 8): the result always begins with
// "<<<<<<< HEAD\n", contains exactly one "=======" line, and ends with
// ">>>>>>>".
func ConflictMarkers(currentContents, givenContents []byte) []byte {
	out := make([]byte, 0, len(currentContents)+len(givenContents)+32)
	out = append(out, "<<<<<<< HEAD\n"...)
	out = append(out, currentContents...)
	out = append(out, "\n=======\n"...)
	out = append(out, givenContents...)
	out = append(out, ">>>>>>>"...)
	return out
}
