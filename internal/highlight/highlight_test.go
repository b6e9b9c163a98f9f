package highlight

import (
	"reflect"
	"strings"
	"testing"

	"comment-screener/internal/models"
)

func TestInlineMark(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		triggers []string
		want     string
	}{
		{name: "empty text", text: "", triggers: []string{"x"}, want: ""},
		{name: "no triggers", text: "hello there", triggers: nil, want: "hello there"},
		{name: "blank triggers", text: "hello there", triggers: []string{""}, want: "hello there"},
		{name: "single", text: "you are so stupid", triggers: []string{"stupid"}, want: "you are so <<stupid>>"},
		{name: "keeps casing", text: "STUPID and Ugly", triggers: []string{"stupid", "ugly"}, want: "<<STUPID>> and <<Ugly>>"},
		{name: "inside word", text: "diet", triggers: []string{"die"}, want: "<<die>>t"},
		{name: "every occurrence", text: "dumb, dumb", triggers: []string{"dumb"}, want: "<<dumb>>, <<dumb>>"},
		{name: "duplicates collapse", text: "hate", triggers: []string{"hate", "HATE", "hate"}, want: "<<hate>>"},
		{name: "adjacent", text: "hatekill", triggers: []string{"hate", "kill"}, want: "<<hate>><<kill>>"},
		{name: "first listed wins at position", text: "killer", triggers: []string{"kill", "killer"}, want: "<<kill>>er"},
		{name: "longer listed first wins", text: "killer", triggers: []string{"killer", "kill"}, want: "<<killer>>"},
		{name: "no overlap", text: "aaa", triggers: []string{"aa"}, want: "<<aa>>a"},
		{name: "regex metacharacters are literal", text: "a+b (c) a.b", triggers: []string{"a+b", "(c)"}, want: "<<a+b>> <<(c)>> a.b"},
		{name: "non ascii text", text: "Привет, ÉCOLE", triggers: []string{"école"}, want: "Привет, <<ÉCOLE>>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InlineMark(tc.text, tc.triggers); got != tc.want {
				t.Fatalf("InlineMark = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	got := Annotate("You are so Stupid and ugly!", []string{"stupid", "ugly"})
	want := []models.Segment{
		{Text: "You are so "},
		{IsMatch: true, Text: "Stupid"},
		{Text: " and "},
		{IsMatch: true, Text: "ugly"},
		{Text: "!"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Annotate = %+v, want %+v", got, want)
	}
}

func TestAnnotateEdgeCases(t *testing.T) {
	if got := Annotate("", []string{"x"}); len(got) != 0 {
		t.Fatalf("expected no segments for empty text, got %+v", got)
	}

	got := Annotate("plain text", nil)
	if len(got) != 1 || got[0].IsMatch || got[0].Text != "plain text" {
		t.Fatalf("expected a single unmatched segment, got %+v", got)
	}

	whole := Annotate("trash", []string{"trash"})
	if len(whole) != 1 || !whole[0].IsMatch {
		t.Fatalf("expected one matched segment, got %+v", whole)
	}
}

func TestSpans(t *testing.T) {
	got := Spans("idiot IDIOT", []string{"idiot"})
	want := []models.Span{{Start: 0, End: 5}, {Start: 6, End: 11}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Spans = %+v, want %+v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"nothing to see",
		"you are so stupid and ugly",
		"Hate hate HATE, please!",
		"diet killer trashcan",
		"üñíçødé dumb text",
	}
	triggerSets := [][]string{
		nil,
		{"stupid", "ugly"},
		{"hate", "please"},
		{"die", "kill", "killer", "trash"},
		{"a", "e", "t"},
		{"dumb", "üñí"},
	}

	for _, text := range texts {
		for _, triggers := range triggerSets {
			marked := InlineMark(text, triggers)
			if back := StripMarkers(marked); back != text {
				t.Fatalf("round trip failed for %q with %q: got %q via %q", text, triggers, back, marked)
			}

			var b strings.Builder
			for _, seg := range Annotate(text, triggers) {
				b.WriteString(seg.Text)
			}
			if b.String() != text {
				t.Fatalf("segments do not rebuild %q: got %q", text, b.String())
			}
		}
	}
}
