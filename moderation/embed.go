package moderation

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"
)

//go:embed censored/*
var censoredFS embed.FS

// FromEmbedded builds a Moderator from the censored word lists shipped
// with the binary.
func FromEmbedded(censoredChar rune, log *slog.Logger) (*Moderator, error) {
	loader := NewCensoredLoader(censoredFS)
	data, err := loader.LoadAll("censored")
	if err != nil {
		return nil, err
	}

	log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	return NewModerator(data.Words, censoredChar, log)
}
