package directive

import "testing"

func TestExtractMapToken(t *testing.T) {
	ext := Extract("Visit [[MAP:Big Ben:51.5007:-0.1246]] today")

	if ext.DisplayText != "Visit today" {
		t.Errorf("display = %q, want %q", ext.DisplayText, "Visit today")
	}
	if len(ext.Maps) != 1 {
		t.Fatalf("maps = %d, want 1", len(ext.Maps))
	}
	m := ext.Maps[0]
	if m.Label != "Big Ben" {
		t.Errorf("label = %q, want %q", m.Label, "Big Ben")
	}
	if m.Latitude != 51.5007 || m.Longitude != -0.1246 {
		t.Errorf("coords = (%v, %v), want (51.5007, -0.1246)", m.Latitude, m.Longitude)
	}
}

func TestExtractImageToken(t *testing.T) {
	ext := Extract("See [[IMG:Tower Bridge]] now")

	if ext.DisplayText != "See now" {
		t.Errorf("display = %q, want %q", ext.DisplayText, "See now")
	}
	if len(ext.Images) != 1 {
		t.Fatalf("images = %d, want 1", len(ext.Images))
	}
	if ext.Images[0].SearchTerm != "Tower Bridge" {
		t.Errorf("search term = %q, want %q", ext.Images[0].SearchTerm, "Tower Bridge")
	}
}

func TestExtractMalformedCoordinateDropped(t *testing.T) {
	ext := Extract("Go to [[MAP:Somewhere:north:west]] for views")

	if len(ext.Maps) != 0 {
		t.Errorf("maps = %d, want 0 for non-numeric coordinates", len(ext.Maps))
	}
	if ext.DisplayText != "Go to for views" {
		t.Errorf("display = %q, want surrounding text intact", ext.DisplayText)
	}
}

func TestExtractWrongFieldCountDropped(t *testing.T) {
	ext := Extract("Here [[MAP:OnlyAName]] there")

	if len(ext.Maps) != 0 {
		t.Errorf("maps = %d, want 0 for missing fields", len(ext.Maps))
	}
	if ext.DisplayText != "Here there" {
		t.Errorf("display = %q, want token stripped", ext.DisplayText)
	}
}

func TestExtractPreservesOrderAndDuplicates(t *testing.T) {
	raw := "[[IMG:sunset]] A [[MAP:X:1.0:2.0]] B [[IMG:sunset]] C [[MAP:Y:3.5:-4.5]]"
	ext := Extract(raw)

	if ext.DisplayText != "A B C" {
		t.Errorf("display = %q, want %q", ext.DisplayText, "A B C")
	}
	if len(ext.Maps) != 2 || ext.Maps[0].Label != "X" || ext.Maps[1].Label != "Y" {
		t.Errorf("maps = %+v, want X then Y", ext.Maps)
	}
	if len(ext.Images) != 2 || ext.Images[0].SearchTerm != "sunset" || ext.Images[1].SearchTerm != "sunset" {
		t.Errorf("images = %+v, want duplicate sunset hints kept", ext.Images)
	}
}

func TestExtractNoTokens(t *testing.T) {
	raw := "Just a plain answer about the city."
	ext := Extract(raw)

	if ext.DisplayText != raw {
		t.Errorf("display = %q, want unchanged input", ext.DisplayText)
	}
	if len(ext.Maps) != 0 || len(ext.Images) != 0 {
		t.Error("expected no directives")
	}
}

func TestExtractUnterminatedTokenLeftAlone(t *testing.T) {
	raw := "Broken [[MAP:Big Ben:51.5:-0.12 output"
	ext := Extract(raw)

	if ext.DisplayText != raw {
		t.Errorf("display = %q, want unterminated opening kept literally", ext.DisplayText)
	}
	if len(ext.Maps) != 0 {
		t.Error("expected no map directive from unterminated token")
	}
}

func TestExtractLiteralBracketsKept(t *testing.T) {
	raw := "Scores [[like this]] are not directives"
	ext := Extract(raw)

	if ext.DisplayText != raw {
		t.Errorf("display = %q, want %q", ext.DisplayText, raw)
	}
}

func TestExtractTokenOnlyInput(t *testing.T) {
	ext := Extract("[[MAP:Louvre:48.8606:2.3376]]")

	if ext.DisplayText != "" {
		t.Errorf("display = %q, want empty", ext.DisplayText)
	}
	if len(ext.Maps) != 1 {
		t.Fatalf("maps = %d, want 1", len(ext.Maps))
	}
}

func TestExtractEmptyImageTermDropped(t *testing.T) {
	ext := Extract("Look [[IMG:]] here")

	if len(ext.Images) != 0 {
		t.Errorf("images = %d, want 0 for empty term", len(ext.Images))
	}
	if ext.DisplayText != "Look here" {
		t.Errorf("display = %q, want %q", ext.DisplayText, "Look here")
	}
}

func TestExtractAcrossLines(t *testing.T) {
	raw := "First stop:\n[[MAP:Shard:51.5045:-0.0865]]\nThen walk east."
	ext := Extract(raw)

	if ext.DisplayText != "First stop:\n\nThen walk east." {
		t.Errorf("display = %q", ext.DisplayText)
	}
	if len(ext.Maps) != 1 || ext.Maps[0].Label != "Shard" {
		t.Errorf("maps = %+v, want the Shard", ext.Maps)
	}
}

func TestExtractBackToBackTokens(t *testing.T) {
	ext := Extract("Go to [[MAP:Shard:51.5045:-0.0865]][[IMG:The Shard]] now")

	if ext.DisplayText != "Go to now" {
		t.Errorf("display = %q, want %q", ext.DisplayText, "Go to now")
	}
	if len(ext.Maps) != 1 || len(ext.Images) != 1 {
		t.Errorf("directives = (%d maps, %d images), want (1, 1)", len(ext.Maps), len(ext.Images))
	}
}

func TestExtractLeadingToken(t *testing.T) {
	ext := Extract("[[IMG:Big Ben]] is worth a look")

	if ext.DisplayText != "is worth a look" {
		t.Errorf("display = %q", ext.DisplayText)
	}
}
