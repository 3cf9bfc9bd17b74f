package frontmatter

import (
	"reflect"
	"testing"
)

func TestExtractTags_Basic(t *testing.T) {
	got := ExtractTags("---\ntags:\n- A\n- B\n---\n")
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_OrderPreserved(t *testing.T) {
	got := ExtractTags("---\ntags:\n- zebra\n- alpha\n- zebra\n---\nbody")
	want := []string{"zebra", "alpha", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v (duplicates and order kept)", got, want)
	}
}

func TestExtractTags_NoLeadingDelimiter(t *testing.T) {
	cases := []string{
		"",
		"# Heading\nbody",
		"\n---\ntags:\n- A\n---\n", // blank line before the block
		"text before\n---\ntags:\n- A\n---\n",
	}
	for _, in := range cases {
		if got := ExtractTags(in); got != nil {
			t.Errorf("ExtractTags(%q) = %v, want nil", in, got)
		}
	}
}

func TestExtractTags_NoTagsKey(t *testing.T) {
	got := ExtractTags("---\ntitle: Hello\n---\nbody")
	if len(got) != 0 {
		t.Errorf("tags = %v, want empty", got)
	}
}

func TestExtractTags_UnclosedBlock(t *testing.T) {
	// Without a closing delimiter there is no block at all.
	got := ExtractTags("---\ntags:\n- A\n- B\n")
	if got != nil {
		t.Errorf("tags = %v, want nil for unclosed block", got)
	}
}

func TestExtractTags_RunEndsAtClosingDelimiter(t *testing.T) {
	// The tag list sits immediately before the closing delimiter; the
	// delimiter itself must bound the run, not be collected as an item.
	got := ExtractTags("---\ntitle: x\ntags:\n- A\n---\nbody")
	want := []string{"A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_RunEndsAtNextKey(t *testing.T) {
	got := ExtractTags("---\ntags:\n- A\n- B\ncreated: 2024-01-01\n---\n")
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_IndentedListItems(t *testing.T) {
	got := ExtractTags("---\ntags:\n  - A\n  - B\n---\n")
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_BlankLineInRunKeptAsEmpty(t *testing.T) {
	// Blank lines are not specially filtered; downstream membership
	// checks never match the empty string anyway.
	got := ExtractTags("---\ntags:\n- A\n\n- B\n---\n")
	want := []string{"A", "", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_CRLF(t *testing.T) {
	got := ExtractTags("---\r\ntags:\r\n- A\r\n---\r\n")
	want := []string{"A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_TagsKeyAfterOtherKeys(t *testing.T) {
	got := ExtractTags("---\ntitle: Project X\naliases:\n- px\ntags:\n- HOC\n---\n")
	want := []string{"HOC"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestExtractTags_SecondBlockIgnored(t *testing.T) {
	// Only the first block counts; a later delimiter pair is body text.
	got := ExtractTags("---\ntitle: x\n---\nbody\n---\ntags:\n- A\n---\n")
	if len(got) != 0 {
		t.Errorf("tags = %v, want empty (tags declared outside first block)", got)
	}
}
