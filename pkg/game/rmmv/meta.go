package rmmv

import "regexp"

var metaTag = regexp.MustCompile(`<([^<>:]+)(:?)([^>]*)>`)

// ParseMeta reads the <key:value> and <key> tags of a note. Bare tags read "true".
func ParseMeta(note string) map[string]string {
	meta := make(map[string]string)
	for _, m := range metaTag.FindAllStringSubmatch(note, -1) {
		if m[2] == ":" {
			meta[m[1]] = m[3]
		} else {
			meta[m[1]] = "true"
		}
	}
	return meta
}
