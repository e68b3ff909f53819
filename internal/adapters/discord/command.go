package discord

import (
	"github.com/bwmarrin/discordgo"

	"feedback-bot/internal/domain"
)

const (
	CommandName   = "feedback"
	OptionRating  = "calificacion"
	OptionMessage = "mensaje"
)

// FeedbackCommand описывает slash-команду /feedback.
func FeedbackCommand() *discordgo.ApplicationCommand {
	perm := int64(discordgo.PermissionSendMessages)
	ratings := domain.RatingChoices()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(ratings))
	for _, r := range ratings {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: r.Label, Value: r.Value})
	}
	return &discordgo.ApplicationCommand{
		Name:                     CommandName,
		Description:              "Envía tu feedback sobre nuestros servicios",
		DefaultMemberPermissions: &perm,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionRating,
				Description: "Calificación del servicio (1-5 estrellas)",
				Required:    true,
				Choices:     choices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionMessage,
				Description: "Tu mensaje de feedback",
				Required:    true,
				MaxLength:   domain.MaxMessageLength,
			},
		},
	}
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, opt := range options {
		if opt == nil || opt.Name != name || opt.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		return opt.StringValue(), true
	}
	return "", false
}
