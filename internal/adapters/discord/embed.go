package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"feedback-bot/internal/domain"
)

const (
	notificationTitle  = "📝 Nuevo Feedback Recibido"
	notificationFooter = "Brushy Feedback System"

	confirmationTitle  = "✅ Feedback Enviado"
	confirmationText   = "¡Gracias por tu feedback! Lo hemos recibido correctamente."
	confirmationFooter = "Brush Studio"
	confirmationColor  = 0x00FF00
)

// NotificationEmbed формирует сообщение для канала отзывов.
func NotificationEmbed(sub domain.Submission) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: notificationTitle,
		Color: sub.Rating.Color(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Usuario", Value: fmt.Sprintf("%s (%s)", sub.UserMention, sub.UserID), Inline: true},
			{Name: "⭐ Calificación", Value: sub.Rating.Display(), Inline: true},
			{Name: "📅 Fecha", Value: discordTimestamp(sub.SubmittedAt), Inline: true},
			{Name: "💬 Mensaje", Value: sub.Message},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: notificationFooter, IconURL: sub.GuildIconURL},
	}
	if sub.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: sub.AvatarURL}
	}
	return embed
}

// ConfirmationEmbed формирует подтверждение для автора отзыва.
func ConfirmationEmbed(sub domain.Submission) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       confirmationTitle,
		Description: confirmationText,
		Color:       confirmationColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Tu calificación", Value: sub.Rating.Display(), Inline: true},
			{Name: "Tu mensaje", Value: sub.Preview()},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: confirmationFooter},
	}
}

// discordTimestamp возвращает метку времени, которую клиент Discord показывает в локальной зоне.
func discordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}
