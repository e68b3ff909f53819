package discord

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

type sentEmbed struct {
	channelID string
	embed     *discordgo.MessageEmbed
}

type fakeSession struct {
	channel     *discordgo.Channel
	channelErr  error
	guild       *discordgo.Guild
	guildErr    error
	sendErr     error
	respondErr  error
	registerErr error
	panicOnSend bool

	channelCalls int
	sent         []sentEmbed
	responses    []*discordgo.InteractionResponse
	registered   []*discordgo.ApplicationCommand
	registeredTo string
}

func (f *fakeSession) Channel(string, ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.channelCalls++
	return f.channel, f.channelErr
}

func (f *fakeSession) Guild(string, ...discordgo.RequestOption) (*discordgo.Guild, error) {
	return f.guild, f.guildErr
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.panicOnSend {
		panic("embed encoder exploded")
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentEmbed{channelID: channelID, embed: embed})
	return &discordgo.Message{ChannelID: channelID}, nil
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return f.respondErr
}

func (f *fakeSession) ApplicationCommandBulkOverwrite(appID, _ string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registeredTo = appID
	f.registered = commands
	return commands, nil
}

type fakeDedup struct {
	seen map[string]struct{}
	err  error
}

func (d *fakeDedup) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if _, ok := d.seen[key]; ok {
		return false, nil
	}
	d.seen[key] = struct{}{}
	return true, nil
}

func feedbackInteraction(roles []string, rating, message string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:      "9001",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "300",
		Member: &discordgo.Member{
			User:  &discordgo.User{ID: "100", Username: "ana", Discriminator: "0"},
			Roles: roles,
		},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: CommandName,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: OptionRating, Type: discordgo.ApplicationCommandOptionString, Value: rating},
				{Name: OptionMessage, Type: discordgo.ApplicationCommandOptionString, Value: message},
			},
		},
	}}
}

func notFoundError() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel, Message: "Unknown Channel"},
	}
}

var errTransport = errors.New("connection reset")
