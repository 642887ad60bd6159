// Package reply provides reply formatting helpers shared by the bounty and
// channel bots: message pagination and the common send options.
package reply

import (
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"
)

// MaxMessageLen is the Telegram message size limit.
const MaxMessageLen = 4096

// PaginateEntries packs a header and a sequence of whole entries into
// messages no longer than limit runes, splitting only between entries.
// An entry that alone exceeds the limit becomes its own oversized page
// rather than being cut mid-entry.
func PaginateEntries(header string, entries []string, limit int) []string {
	if len(entries) == 0 {
		if header == "" {
			return nil
		}
		return []string{header}
	}

	var pages []string
	current := header
	for _, entry := range entries {
		if current == "" {
			current = entry
			continue
		}
		candidate := current + entry
		if utf8.RuneCountInString(candidate) > limit {
			pages = append(pages, current)
			current = entry
			continue
		}
		current = candidate
	}
	if current != "" {
		pages = append(pages, current)
	}
	return pages
}

// Options returns the reply options used for every bot message.
// Content is protected so bounty and registration details cannot be
// forwarded out of the chat.
func Options() *tele.SendOptions {
	return &tele.SendOptions{Protected: true}
}

// Pages sends each page as a sequential message to the command's chat.
func Pages(c tele.Context, pages []string) error {
	for _, page := range pages {
		if err := c.Reply(page, Options()); err != nil {
			return err
		}
	}
	return nil
}
