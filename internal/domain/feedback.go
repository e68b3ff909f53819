package domain

import (
	"errors"
	"time"
)

// MaxMessageLength — максимальная длина текста отзыва.
const MaxMessageLength = 1000

// ConfirmationPreviewLength — сколько символов сообщения показывается в подтверждении.
const ConfirmationPreviewLength = 100

// ErrChannelNotFound возвращается, если канал для отзывов не найден.
var ErrChannelNotFound = errors.New("feedback channel not found")

// Submission представляет отзыв пользователя. Живёт только в рамках одного вызова команды.
type Submission struct {
	ID           string
	UserID       string
	UserMention  string
	UserTag      string
	AvatarURL    string
	GuildID      string
	GuildIconURL string
	Rating       Rating
	Message      string
	SubmittedAt  time.Time
}

// Preview возвращает сообщение, укороченное для подтверждения.
func (s Submission) Preview() string {
	return TruncateMessage(s.Message, ConfirmationPreviewLength)
}

// HasAnyRole сообщает, есть ли у участника хотя бы одна из разрешённых ролей.
func HasAnyRole(memberRoles, allowed []string) bool {
	if len(memberRoles) == 0 || len(allowed) == 0 {
		return false
	}
	lookup := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		lookup[id] = struct{}{}
	}
	for _, id := range memberRoles {
		if _, ok := lookup[id]; ok {
			return true
		}
	}
	return false
}

// TruncateMessage обрезает текст до limit символов и добавляет "...".
func TruncateMessage(text string, limit int) string {
	runes := []rune(text)
	if limit < 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
