package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHashtagsForArticle_CappedAndUnique(t *testing.T) {
	g := NewCaptionGenerator()

	tags := g.HashtagsForArticle(
		"Nachhaltig studieren mit gebrauchten Büchern und kleinem Budget",
		[]string{"Studium", "Nachhaltigkeit", "Finanzen"},
		[]string{"bücher", "sparen", "second hand", "campus", "lernen"},
	)

	if len(tags) > 15 {
		t.Fatalf("got %d hashtags, want at most 15", len(tags))
	}
	seen := make(map[string]bool)
	for _, tag := range tags {
		if !strings.HasPrefix(tag, "#") {
			t.Fatalf("hashtag %q is missing the # prefix", tag)
		}
		if seen[tag] {
			t.Fatalf("duplicate hashtag %q", tag)
		}
		seen[tag] = true
	}
	if !seen["#studibuch"] {
		t.Fatalf("base hashtag #studibuch missing from %v", tags)
	}
}

func TestHashtagsForTopic_IncludesTopicWords(t *testing.T) {
	g := NewCaptionGenerator()

	tags := g.HashtagsForTopic("Prüfungsangst überwinden")
	if len(tags) > 15 {
		t.Fatalf("got %d hashtags, want at most 15", len(tags))
	}

	joined := strings.Join(tags, " ")
	if !strings.Contains(joined, "#prüfungsangst") {
		t.Fatalf("topic word missing from hashtags: %v", tags)
	}
}

func TestCaptionForTopic_SubstitutesTopicHashtag(t *testing.T) {
	g := NewCaptionGenerator()

	// The placeholder only occurs in one template; run enough draws to hit it.
	for i := 0; i < 100; i++ {
		caption := g.CaptionForTopic("Zeitmanagement im Studium")
		if strings.Contains(caption, "#{topic_hashtag}") {
			t.Fatalf("placeholder left unsubstituted: %q", caption)
		}
		if !strings.Contains(caption, "Zeitmanagement im Studium") {
			t.Fatalf("caption %q does not mention the topic", caption)
		}
	}
}

func TestCaptionForTopic_TopicHashtagKeepsRunesIntact(t *testing.T) {
	g := NewCaptionGenerator()

	// 19 ASCII letters followed by umlauts: a byte-based cap at 20 would
	// split the first ü in half.
	topic := strings.Repeat("a", 19) + "üüüü"
	for i := 0; i < 100; i++ {
		caption := g.CaptionForTopic(topic)
		if !utf8.ValidString(caption) {
			t.Fatalf("caption is invalid UTF-8: %q", caption)
		}
	}
}

func TestFullCaption_JoinsHashtagBlock(t *testing.T) {
	got := FullCaption("Hallo Welt", []string{"#a", "#b"})
	want := "Hallo Welt\n\n#a #b"
	if got != want {
		t.Fatalf("FullCaption() = %q, want %q", got, want)
	}
}
