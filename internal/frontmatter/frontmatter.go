// Package frontmatter extracts the tag list from a note's front-matter
// block. The block is treated as semi-structured text, not parsed as
// general YAML: the only shape we need is a flat list under a single
// "tags:" key, inside one block at the very start of the document. The
// supported grammar is deliberately narrow; nested or multi-line tag
// declarations are not understood.
package frontmatter

import "strings"

// Scanner states.
const (
	beforeBlock = iota
	seekingKey
	inTagRun
	done
)

const delimiter = "---"

// ExtractTags returns the tags declared in the note's front matter, in
// declaration order. It returns nil when the text does not begin with a
// delimiter line, when the block is never closed, or when the block has
// no "tags:" key. Blank lines inside the tag run yield empty strings;
// they are not filtered here, downstream membership checks ignore them.
func ExtractTags(text string) []string {
	var tags []string
	state := beforeBlock

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		switch state {
		case beforeBlock:
			// The block must open on the very first line.
			if i != 0 || line != delimiter {
				return nil
			}
			state = seekingKey

		case seekingKey:
			if line == delimiter {
				return tags
			}
			if strings.TrimRight(line, " \t") == "tags:" {
				state = inTagRun
			}

		case inTagRun:
			// The closing delimiter bounds the run: it is matched here,
			// before the line could be mistaken for a list item.
			if line == delimiter {
				return tags
			}
			if !continuesRun(line) {
				// Next YAML key begins; stop collecting but keep
				// scanning for the closing delimiter.
				state = done
				continue
			}
			item := strings.TrimSpace(line)
			item = strings.TrimPrefix(item, "- ")
			tags = append(tags, item)

		case done:
			if line == delimiter {
				return tags
			}
		}
	}

	// No closing delimiter: the text has no front-matter block.
	return nil
}

// continuesRun reports whether line is still part of the tag list: a
// list item, an indented continuation, or a blank line. A line opening
// with any other non-whitespace character starts the next key.
func continuesRun(line string) bool {
	if line == "" {
		return true
	}
	if line[0] == ' ' || line[0] == '\t' {
		return true
	}
	return strings.HasPrefix(line, "- ")
}
