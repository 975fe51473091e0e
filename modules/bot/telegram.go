package bot

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is Telegram's limit for a single text message, in characters.
const maxMessageLength = 4096

// Sender is the part of the Telegram client used to deliver replies.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var _ Sender = (*tgbotapi.BotAPI)(nil)

// deliver sends reply to chatID. When reply.Edit is set and messageID refers
// to the message carrying the pressed button, the first chunk replaces its text.
func deliver(s Sender, chatID int64, messageID int, reply Reply) error {
	if reply.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  reply.Document.Name,
			Bytes: reply.Document.Data,
		})
		doc.Caption = reply.Document.Caption
		if _, err := s.Send(doc); err != nil {
			return fmt.Errorf("failed to send document: %w", err)
		}
		return nil
	}

	if reply.Text == "" {
		return nil
	}

	chunks := splitMessage(reply.Text, maxMessageLength)
	for i, chunk := range chunks {
		last := i == len(chunks)-1

		if i == 0 && reply.Edit && messageID != 0 {
			edit := tgbotapi.NewEditMessageText(chatID, messageID, chunk)
			if reply.HTML {
				edit.ParseMode = tgbotapi.ModeHTML
			}
			if _, err := s.Send(edit); err != nil {
				return fmt.Errorf("failed to edit message: %w", err)
			}
			continue
		}

		msg := tgbotapi.NewMessage(chatID, chunk)
		if reply.HTML {
			msg.ParseMode = tgbotapi.ModeHTML
		}
		if reply.Menu && last {
			msg.ReplyMarkup = mainMenu()
		}
		if _, err := s.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

// splitMessage breaks text into chunks of at most limit characters,
// cutting at line breaks where possible so HTML lines stay intact.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	size := 0

	flush := func() {
		if size > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(line)

		for n > limit {
			flush()
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}

		extra := n
		if size > 0 {
			extra++
		}
		if size+extra > limit {
			flush()
			extra = n
		}
		if size > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
		size += extra
	}
	flush()

	return chunks
}
