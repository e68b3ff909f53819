package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Intents, которые запрашивает бот при подключении к шлюзу.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

// NewSession создаёт сессию discordgo с токеном бота.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = Intents
	s.LogLevel = discordgo.LogWarning
	return s, nil
}

// Bot связывает события шлюза с обработчиком команды.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	log     zerolog.Logger
}

// NewBot создаёт бота. Внутренний логгер discordgo перенаправляется в zerolog.
func NewBot(session *discordgo.Session, handler *Handler, log zerolog.Logger) *Bot {
	discordgo.Logger = LoggerBridge(log.With().Str("component", "discordgo").Logger())
	return &Bot{session: session, handler: handler, log: log}
}

// Run открывает соединение и держит его до отмены ctx.
// Начатые вызовы команды не прерываются отменой ctx.
func (b *Bot) Run(ctx context.Context) error {
	base := context.WithoutCancel(ctx)
	removeReady := b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.onReady(base, r)
	})
	removeInteraction := b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handler.HandleInteraction(base, i)
	})
	defer removeReady()
	defer removeInteraction()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	<-ctx.Done()
	b.log.Info().Msg("закрываем соединение с Discord")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord gateway: %w", err)
	}
	return nil
}

func (b *Bot) onReady(ctx context.Context, r *discordgo.Ready) {
	if r == nil || r.User == nil {
		b.log.Warn().Msg("событие Ready без пользователя бота")
		return
	}
	b.log.Info().Str("bot", r.User.String()).Msg("бот подключён к Discord")
	if err := b.handler.Register(ctx, r.User.ID); err != nil {
		b.log.Error().Err(err).Msg("не удалось зарегистрировать /feedback")
		return
	}
	b.log.Info().Str("command", CommandName).Msg("команда зарегистрирована")
}

// LoggerBridge адаптирует zerolog под сигнатуру discordgo.Logger.
func LoggerBridge(log zerolog.Logger) func(msgL, caller int, format string, a ...interface{}) {
	return func(msgL, _ int, format string, a ...interface{}) {
		var ev *zerolog.Event
		switch msgL {
		case discordgo.LogError:
			ev = log.Error()
		case discordgo.LogWarning:
			ev = log.Warn()
		case discordgo.LogInformational:
			ev = log.Info()
		default:
			ev = log.Debug()
		}
		ev.Msgf(format, a...)
	}
}
