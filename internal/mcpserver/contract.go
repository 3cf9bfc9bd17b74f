package mcpserver

// ConventionDoc describes the folder note convention that the
// navigation tools operate on.
const ConventionDoc = `# Folder Note Convention

Foldernote navigates a vault of Markdown notes organized around
**folder notes**: a note named after its containing folder.

## Folder notes

A folder note for directory ` + "`" + `A/B/` + "`" + ` is the file ` + "`" + `A/B/B.md` + "`" + ` — same
stem as the folder, living inside it.

## Marker tags

A folder note participates in navigation when its frontmatter carries a
marker tag:

` + "```" + `markdown
---
tags:
- HOC
---
` + "```" + `

- The **primary** marker (default ` + "`" + `HOC` + "`" + `) marks a project's head note.
- The **secondary** marker (default ` + "`" + `MOC` + "`" + `) marks a map-of-content note.

Both markers are configurable via the settings record. Tag matching is
exact and case-sensitive: ` + "`" + `hoc` + "`" + ` does not match ` + "`" + `HOC` + "`" + `.

Only the tags listed under the top-level ` + "`" + `tags:` + "`" + ` key of the leading
frontmatter block count. The block must start on the very first line of
the file and be closed by a ` + "`" + `---` + "`" + ` line.

## Ancestor resolution

` + "`" + `open_project_note` + "`" + ` and ` + "`" + `open_moc_note` + "`" + ` walk from the active note's
folder upward toward the vault root, checking each folder note for the
marker. The nearest tagged folder note wins. The active note itself is
skipped, so invoking the command while already on a tagged folder note
jumps to the next tagged ancestor.

When no tagged ancestor exists the resolution falls back to the vault
root note (` + "`" + `README.md` + "`" + `) if present, and reports ` + "`" + `not_found` + "`" + ` otherwise.

## View modes

Notes carrying a force-preview tag (default: the marker tags themselves)
open in ` + "`" + `preview` + "`" + ` mode; everything else opens in ` + "`" + `source` + "`" + ` mode.
`
