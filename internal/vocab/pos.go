package vocab

import "regexp"

// posPattern matches a leading part-of-speech tag such as "(n.)",
// "(vt.)" or "(n. [C])" and captures the remaining text.
var posPattern = regexp.MustCompile(`^(\([a-z]+\.?\s*(?:\[.*?\])?\))\s*(.*)`)

// SplitPartOfSpeech separates the leading part-of-speech tag from a
// definition. Without a tag, tag is empty and rest is the definition.
func SplitPartOfSpeech(definition string) (tag, rest string) {
	m := posPattern.FindStringSubmatch(definition)
	if m == nil {
		return "", definition
	}
	return m[1], m[2]
}
