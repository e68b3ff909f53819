package discord

import "github.com/bwmarrin/discordgo"

// Session — часть API discordgo.Session, которая нужна обработчику.
type Session interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// cachedSession сначала смотрит в кэш состояния шлюза и только потом ходит в REST.
type cachedSession struct {
	*discordgo.Session
}

// NewCachedSession оборачивает сессию discordgo.
func NewCachedSession(s *discordgo.Session) Session {
	return cachedSession{Session: s}
}

func (s cachedSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if s.State != nil {
		if ch, err := s.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	return s.Session.Channel(channelID, options...)
}

func (s cachedSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	if s.State != nil {
		if g, err := s.State.Guild(guildID); err == nil {
			return g, nil
		}
	}
	return s.Session.Guild(guildID, options...)
}
