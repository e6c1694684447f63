package descriptor

import (
	"errors"
	"strings"
	"testing"
)

func TestUpdateManifestRewritesLine(t *testing.T) {
	text := "addappid(100)\naddappid(200,1,\"abc\")\nsetManifestid(200,\"555\",0)\n"

	updated, err := UpdateManifest(text, 200, "777")
	if err != nil {
		t.Fatal(err)
	}
	want := "addappid(100)\naddappid(200,1,\"abc\")\nsetManifestid(200,\"777\",0)\n"
	if updated != want {
		t.Fatalf("updated text:\n%s\nwant:\n%s", updated, want)
	}
}

func TestUpdateManifestNormalizesFlag(t *testing.T) {
	text := "setManifestid(200,\"555\",1)\n"

	updated, err := UpdateManifest(text, 200, "777")
	if err != nil {
		t.Fatal(err)
	}
	if updated != "setManifestid(200,\"777\",0)\n" {
		t.Fatalf("flag not normalized: %q", updated)
	}
}

func TestUpdateManifestPreservesSurroundingText(t *testing.T) {
	text := "-- keep this comment\naddappid(100)\n  setManifestid(200,\"555\",0)\nprint(\"after\")\n"

	updated, err := UpdateManifest(text, 200, "777")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(updated, "-- keep this comment\n") {
		t.Fatal("leading text lost")
	}
	if !strings.Contains(updated, "print(\"after\")\n") {
		t.Fatal("trailing text lost")
	}
	if !strings.Contains(updated, "  setManifestid(200,\"777\",0)") {
		t.Fatalf("indentation not preserved:\n%s", updated)
	}
}

func TestUpdateManifestTouchesOnlyRequestedDepot(t *testing.T) {
	text := "setManifestid(200,\"555\",0)\nsetManifestid(300,\"888\",0)\n"

	updated, err := UpdateManifest(text, 200, "777")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(updated, "setManifestid(300,\"888\",0)") {
		t.Fatalf("unrelated depot modified:\n%s", updated)
	}
}

func TestUpdateManifestLooseFallback(t *testing.T) {
	// No line-anchored match because the marker shares a line with other code.
	text := "do_things(); setManifestid(200,\"555\",0); more()\n"

	updated, err := UpdateManifest(text, 200, "777")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(updated, "setManifestid(200,\"777\",0)") {
		t.Fatalf("loose rewrite missing:\n%s", updated)
	}
	if !strings.Contains(updated, "do_things(); ") {
		t.Fatalf("prefix lost:\n%s", updated)
	}
}

func TestUpdateManifestAbsentDepot(t *testing.T) {
	text := "addappid(100)\nsetManifestid(200,\"555\",0)\n"

	_, err := UpdateManifest(text, 999, "777")
	if !errors.Is(err, ErrUpdateNotApplied) {
		t.Fatalf("got %v, want ErrUpdateNotApplied", err)
	}
}

func TestUpdateManifestRewritesAllAnchoredOccurrences(t *testing.T) {
	text := "setManifestid(200,\"555\",0)\nsetManifestid(200,\"556\",0)\n"

	updated, err := UpdateManifest(text, 200, "777")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(updated, "setManifestid(200,\"777\",0)") != 2 {
		t.Fatalf("expected both occurrences rewritten:\n%s", updated)
	}
}

func TestCarriesManifest(t *testing.T) {
	text := "addappid(100)\nSETMANIFESTID( 200 , \"777\" , 0 )\n"

	if !CarriesManifest(text, 200, "777") {
		t.Fatal("spaced case-insensitive marker not recognized")
	}
	if CarriesManifest(text, 200, "555") {
		t.Fatal("wrong manifest id accepted")
	}
	if CarriesManifest(text, 300, "777") {
		t.Fatal("wrong depot accepted")
	}
}
