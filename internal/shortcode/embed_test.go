package shortcode

import (
	"errors"
	"reflect"
	"testing"
)

func TestIsEmbed(t *testing.T) {
	cases := map[string]bool{
		"[[ embed url=https://youtu.be/abc ]]":          true,
		"[[ embed url=https://youtu.be/abc ]] trailing": true,
		"[[embed url=https://youtu.be/abc]]":            false,
		"[[ embed src=https://youtu.be/abc ]]":          false,
		"[[ video url=https://youtu.be/abc ]]":          false,
		" [[ embed url=x ]]":                            false,
		"plain text":                                    false,
	}
	for raw, want := range cases {
		if got := IsEmbed(raw); got != want {
			t.Fatalf("IsEmbed(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestIsBlock(t *testing.T) {
	if !IsBlock("[[ gallery id=12 ]]") {
		t.Fatal("expected loose grammar to match any shortcode name")
	}
	if !IsBlock("[[ embed url=x ]]") {
		t.Fatal("expected embed to match loose grammar")
	}
	if IsBlock("[[x]]") {
		t.Fatal("expected unspaced brackets to be rejected")
	}
}

func TestParseEmbed(t *testing.T) {
	embed, err := ParseEmbed("[[ embed url=https://vimeo.com/1 ]]")
	if err != nil {
		t.Fatalf("ParseEmbed: %v", err)
	}
	if embed.URL != "https://vimeo.com/1" {
		t.Fatalf("unexpected url %q", embed.URL)
	}

	_, err = ParseEmbed("[[ gallery id=1 ]]")
	if !errors.Is(err, ErrMalformedEmbed) {
		t.Fatalf("expected ErrMalformedEmbed, got %v", err)
	}
}

func TestParse(t *testing.T) {
	sc, ok := Parse(`[[ gallery id=12 layout="grid" wide ]]`)
	if !ok {
		t.Fatal("expected shortcode to parse")
	}
	if sc.Name != "gallery" {
		t.Fatalf("unexpected name %q", sc.Name)
	}
	want := map[string]string{"id": "12", "layout": "grid", "param3": "wide"}
	if !reflect.DeepEqual(sc.Params, want) {
		t.Fatalf("unexpected params %v", sc.Params)
	}

	if _, ok := Parse("no brackets"); ok {
		t.Fatal("expected plain text not to parse")
	}
}
