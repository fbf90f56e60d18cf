package htmlsanitize_test

import (
	"testing"

	"github.com/studyhive/studyhive/internal/app/system/htmlsanitize"
)

func TestText_Empty(t *testing.T) {
	if got := htmlsanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_PlainTextUnchanged(t *testing.T) {
	if got := htmlsanitize.Text("Weekly calculus review, chapter 4."); got != "Weekly calculus review, chapter 4." {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestText_RemovesScript(t *testing.T) {
	got := htmlsanitize.Text("notes<script>alert('xss')</script>")
	if got != "notes" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestText_StripsTagsKeepsContent(t *testing.T) {
	got := htmlsanitize.Text("<p><strong>Important</strong> reading</p>")
	if got != "Important reading" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestText_TrimsWhitespace(t *testing.T) {
	if got := htmlsanitize.Text("  padded  "); got != "padded" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}
