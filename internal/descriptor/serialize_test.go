package descriptor

import "testing"

func TestSerializeCanonicalOrder(t *testing.T) {
	d := Descriptor{
		AppID: 100,
		Depots: map[int64]DepotEntry{
			300: {Token: "zzz", ManifestID: "9999999999"},
			200: {Token: "abc", ManifestID: "555"},
		},
	}

	want := "addappid(100)\n" +
		"addappid(200,1,\"abc\")\n" +
		"addappid(300,1,\"zzz\")\n" +
		"setManifestid(200,\"555\",0)\n" +
		"setManifestid(300,\"9999999999\",0)\n"
	if got := d.Serialize(); got != want {
		t.Fatalf("serialized text:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeSkipsEmptyFields(t *testing.T) {
	d := Descriptor{
		AppID: 10,
		Depots: map[int64]DepotEntry{
			1: {Token: "only-token"},
			2: {ManifestID: "7777777777"},
		},
	}

	want := "addappid(10)\n" +
		"addappid(1,1,\"only-token\")\n" +
		"setManifestid(2,\"7777777777\",0)\n"
	if got := d.Serialize(); got != want {
		t.Fatalf("serialized text:\n%s\nwant:\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	original := Descriptor{
		AppID: 4870,
		Depots: map[int64]DepotEntry{
			4871: {Token: "aaaa", ManifestID: "1111111111"},
			4872: {Token: "bbbb"},
			4873: {ManifestID: "2222222222"},
		},
	}

	parsed := Parse(original.Serialize())
	if parsed.AppID != original.AppID {
		t.Fatalf("appid: got %d, want %d", parsed.AppID, original.AppID)
	}
	if len(parsed.Depots) != len(original.Depots) {
		t.Fatalf("depot count: got %d, want %d", len(parsed.Depots), len(original.Depots))
	}
	for id, want := range original.Depots {
		if got := parsed.Depots[id]; got != want {
			t.Fatalf("depot %d: got %+v, want %+v", id, got, want)
		}
	}
}
