package announcer

import (
	"fmt"
	"strings"

	"github.com/brodyman30/YourFM/internal/bumper"
)

// bannedTopicWords: topics the model is told never to improvise facts
// about; when a station asks for them anyway, the prompt skips topics
// entirely rather than inviting fabrication.
var bannedTopicWords = []string{"weather", "news", "time", "date", "temperature"}

// metaWords in a reply mean the model echoed its instructions instead
// of speaking like a DJ.
var metaWords = []string{"prompt", "instruction", "create", "generate"}

const maxScriptWords = 55

// BuildPrompt assembles the DJ prompt from the firing context.
func BuildPrompt(req bumper.Request) string {
	artist := req.CurrentTrackArtist
	if artist == "" {
		artist = "an amazing track"
	}
	track := req.CurrentTrackName
	genres := genresPhrase(req.Genres)

	var b strings.Builder
	fmt.Fprintf(&b, "You just played '%s' by %s. ", track, artist)

	if topics := usableTopics(req.Topics); len(topics) > 0 {
		fmt.Fprintf(&b, "Share a unique interesting fact about: %s for %s. ",
			strings.Join(topics, ", "), artist)
	} else {
		b.WriteString("Say something energetic. ")
	}

	if req.NextTrackName != "" && req.NextTrackArtist != "" {
		fmt.Fprintf(&b, "Then mention '%s' by %s is coming up next. ",
			req.NextTrackName, req.NextTrackArtist)
	} else {
		b.WriteString("Then hype what's next. ")
	}

	if req.ListenerLocation != "" {
		fmt.Fprintf(&b, "The listener is tuned in from %s. ", req.ListenerLocation)
	}

	fmt.Fprintf(&b, "End with 'on your F M, your %s station!' or similar.", genres)
	return b.String()
}

// FallbackScript is the deterministic template used when the model is
// unavailable or its reply fails the checks.
func FallbackScript(req bumper.Request) string {
	artist := req.CurrentTrackArtist
	if artist == "" {
		artist = "an amazing artist"
	}
	track := req.CurrentTrackName
	if track == "" {
		track = "that last one"
	}
	return fmt.Sprintf("That was %s with %s! Stay tuned for more hits on your F M, your %s station!",
		artist, track, genresPhrase(req.Genres))
}

// Acceptable rejects replies that ran long or echoed meta-text.
func Acceptable(text string) bool {
	if text == "" {
		return false
	}
	if len(strings.Fields(text)) > maxScriptWords {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range metaWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

func usableTopics(topics []string) []string {
	joined := strings.ToLower(strings.Join(topics, " "))
	for _, banned := range bannedTopicWords {
		if strings.Contains(joined, banned) {
			return nil
		}
	}
	return topics
}

func genresPhrase(genres []string) string {
	if len(genres) == 0 {
		return "music"
	}
	return strings.Join(genres, " and ")
}
