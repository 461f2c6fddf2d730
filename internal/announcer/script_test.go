package announcer

import (
	"strings"
	"testing"

	"github.com/brodyman30/YourFM/internal/bumper"
)

func TestBuildPrompt(t *testing.T) {
	req := bumper.Request{
		Topics:             []string{"local surf breaks"},
		Genres:             []string{"indie", "surf rock"},
		CurrentTrackName:   "Wipeout",
		CurrentTrackArtist: "The Surfaris",
		NextTrackName:      "Miserlou",
		NextTrackArtist:    "Dick Dale",
		ListenerLocation:   "San Diego",
	}

	prompt := BuildPrompt(req)

	for _, want := range []string{
		"'Wipeout' by The Surfaris",
		"local surf breaks",
		"'Miserlou' by Dick Dale",
		"San Diego",
		"your indie and surf rock station",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptSkipsBannedTopics(t *testing.T) {
	req := bumper.Request{
		Topics:             []string{"today's weather forecast"},
		CurrentTrackName:   "Song",
		CurrentTrackArtist: "Artist",
	}

	prompt := BuildPrompt(req)
	if strings.Contains(prompt, "weather") {
		t.Errorf("banned topic leaked into prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Say something energetic") {
		t.Errorf("expected topic-free prompt variant:\n%s", prompt)
	}
}

func TestFallbackScript(t *testing.T) {
	tests := []struct {
		name string
		req  bumper.Request
		want []string
	}{
		{
			name: "full context",
			req: bumper.Request{
				Genres:             []string{"jazz"},
				CurrentTrackName:   "So What",
				CurrentTrackArtist: "Miles Davis",
			},
			want: []string{"Miles Davis", "So What", "your F M", "your jazz station"},
		},
		{
			name: "empty context still reads like radio",
			req:  bumper.Request{},
			want: []string{"an amazing artist", "that last one", "your music station"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackScript(tt.req)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("fallback missing %q: %s", w, got)
				}
			}
			if !Acceptable(got) {
				t.Errorf("fallback script failed its own checks: %s", got)
			}
		})
	}
}

func TestAcceptable(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"That was great, more hits coming up!", true},
		{"", false},
		{"Sure! Here is the prompt you asked me to write.", false},
		{"I will now generate a radio script.", false},
		{strings.Repeat("word ", maxScriptWords+1), false},
	}

	for _, tt := range tests {
		if got := Acceptable(tt.text); got != tt.want {
			t.Errorf("Acceptable(%.40q) = %v; want %v", tt.text, got, tt.want)
		}
	}
}
