package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"feedback-bot/internal/domain"
	"feedback-bot/internal/infra/metrics"
)

const (
	msgDenied          = "❌ Este comando solo está disponible para clientes y clientes premium."
	msgChannelNotFound = "❌ No se pudo encontrar el canal de feedback. Contacta con un administrador."
	msgFailure         = "❌ Ocurrió un error al enviar tu feedback. Por favor, inténtalo más tarde."
)

// HandlerConfig содержит неизменяемые параметры обработчика.
type HandlerConfig struct {
	ChannelID    string
	AllowedRoles []string
	// Dedup может быть nil, тогда повторная доставка не отслеживается.
	Dedup    domain.Deduplicator
	DedupTTL time.Duration
}

// invocation хранит состояние одного вызова команды.
type invocation struct {
	*discordgo.Interaction
	log       zerolog.Logger
	responded bool
}

// Handler обслуживает команду /feedback. Не хранит состояния между вызовами.
type Handler struct {
	session Session
	log     zerolog.Logger
	cfg     HandlerConfig
	now     func() time.Time
}

// NewHandler создаёт обработчик.
func NewHandler(session Session, log zerolog.Logger, cfg HandlerConfig) *Handler {
	return &Handler{
		session: session,
		log:     log,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Register объявляет команды приложения глобально.
func (h *Handler) Register(ctx context.Context, appID string) error {
	start := time.Now()
	_, err := h.session.ApplicationCommandBulkOverwrite(appID, "", []*discordgo.ApplicationCommand{FeedbackCommand()}, discordgo.WithContext(ctx))
	metrics.ObserveDiscordRequest("register_commands", start, err)
	metrics.ObserveRegistration(err)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}

// HandleInteraction обрабатывает входящее взаимодействие.
func (h *Handler) HandleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	inv := &invocation{
		Interaction: i.Interaction,
		log: h.log.With().
			Str("interaction", i.ID).
			Str("trace_id", uuid.NewString()).
			Str("user", userOf(i.Interaction).ID).
			Logger(),
	}
	log := inv.log

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		metrics.FeedbackFailures.WithLabelValues("panic").Inc()
		log.Error().Interface("panic", r).Msg("паника при обработке взаимодействия")
		if inv.responded {
			return
		}
		if err := h.replyText(ctx, inv, msgFailure); err != nil {
			log.Error().Err(err).Msg("не удалось сообщить пользователю об ошибке")
		}
	}()

	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok || data.Name != CommandName {
		return
	}

	if !h.claim(ctx, inv.log, i.ID) {
		return
	}

	if i.Member == nil || !domain.HasAnyRole(i.Member.Roles, h.cfg.AllowedRoles) {
		metrics.FeedbackDenied.Inc()
		log.Info().Msg("нет разрешённой роли для /feedback")
		if err := h.replyText(ctx, inv, msgDenied); err != nil {
			log.Error().Err(err).Msg("не удалось ответить об отказе")
		}
		return
	}

	sub, err := h.submit(ctx, inv, data)
	if err == nil {
		metrics.FeedbackSubmissions.WithLabelValues(strconv.Itoa(int(sub.Rating))).Inc()
		log.Info().Str("tag", sub.UserTag).Int("rating", int(sub.Rating)).Msg("отзыв отправлен")
		return
	}

	reply := msgFailure
	reason := "transport"
	if errors.Is(err, domain.ErrChannelNotFound) {
		reply = msgChannelNotFound
		reason = "channel_not_found"
	}
	metrics.FeedbackFailures.WithLabelValues(reason).Inc()
	log.Error().Err(err).Str("channel", h.cfg.ChannelID).Msg("ошибка при отправке отзыва")
	if err := h.replyText(ctx, inv, reply); err != nil {
		log.Error().Err(err).Msg("не удалось сообщить пользователю об ошибке")
	}
}

// submit публикует отзыв в канал и подтверждает его автору.
func (h *Handler) submit(ctx context.Context, inv *invocation, data discordgo.ApplicationCommandInteractionData) (domain.Submission, error) {
	sub, err := h.parseSubmission(inv.Interaction, data)
	if err != nil {
		return sub, err
	}

	channel, err := h.resolveChannel(ctx)
	if err != nil {
		return sub, err
	}

	sub.GuildIconURL = h.guildIcon(ctx, inv.log, inv.GuildID)

	start := time.Now()
	_, err = h.session.ChannelMessageSendEmbed(channel.ID, NotificationEmbed(sub), discordgo.WithContext(ctx))
	metrics.ObserveDiscordRequest("send_embed", start, err)
	if err != nil {
		return sub, fmt.Errorf("send notification: %w", err)
	}

	if err := h.respond(ctx, inv, &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{ConfirmationEmbed(sub)}}); err != nil {
		return sub, fmt.Errorf("send confirmation: %w", err)
	}
	return sub, nil
}

func (h *Handler) parseSubmission(in *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) (domain.Submission, error) {
	rawRating, ok := stringOption(data.Options, OptionRating)
	if !ok {
		return domain.Submission{}, fmt.Errorf("option %s is missing", OptionRating)
	}
	rating, err := domain.ParseRating(rawRating)
	if err != nil {
		return domain.Submission{}, err
	}
	message, ok := stringOption(data.Options, OptionMessage)
	if !ok {
		return domain.Submission{}, fmt.Errorf("option %s is missing", OptionMessage)
	}

	user := userOf(in)
	return domain.Submission{
		ID:          in.ID,
		UserID:      user.ID,
		UserMention: user.Mention(),
		UserTag:     user.String(),
		AvatarURL:   user.AvatarURL(""),
		GuildID:     in.GuildID,
		Rating:      rating,
		Message:     message,
		SubmittedAt: h.now(),
	}, nil
}

func (h *Handler) resolveChannel(ctx context.Context) (*discordgo.Channel, error) {
	start := time.Now()
	channel, err := h.session.Channel(h.cfg.ChannelID, discordgo.WithContext(ctx))
	metrics.ObserveDiscordRequest("fetch_channel", start, err)
	if err != nil {
		if isUnknownChannel(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrChannelNotFound, h.cfg.ChannelID)
		}
		return nil, fmt.Errorf("fetch channel %s: %w", h.cfg.ChannelID, err)
	}
	if channel == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrChannelNotFound, h.cfg.ChannelID)
	}
	return channel, nil
}

// guildIcon — декоративное поле, ошибки только логируются.
func (h *Handler) guildIcon(ctx context.Context, log zerolog.Logger, guildID string) string {
	if guildID == "" {
		return ""
	}
	start := time.Now()
	guild, err := h.session.Guild(guildID, discordgo.WithContext(ctx))
	metrics.ObserveDiscordRequest("fetch_guild", start, err)
	if err != nil || guild == nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("не удалось получить иконку сервера")
		return ""
	}
	return guild.IconURL("")
}

func (h *Handler) claim(ctx context.Context, log zerolog.Logger, interactionID string) bool {
	if h.cfg.Dedup == nil {
		return true
	}
	ok, err := h.cfg.Dedup.Claim(ctx, interactionID, h.cfg.DedupTTL)
	if err != nil {
		log.Warn().Err(err).Msg("дедупликация недоступна, обрабатываем без неё")
		return true
	}
	if !ok {
		metrics.FeedbackDuplicates.Inc()
		log.Debug().Msg("повторная доставка взаимодействия пропущена")
	}
	return ok
}

func (h *Handler) replyText(ctx context.Context, inv *invocation, content string) error {
	return h.respond(ctx, inv, &discordgo.InteractionResponseData{Content: content})
}

// respond отвечает автору эфемерным сообщением. Успешный ответ отмечается в inv.
func (h *Handler) respond(ctx context.Context, inv *invocation, data *discordgo.InteractionResponseData) error {
	data.Flags = discordgo.MessageFlagsEphemeral
	start := time.Now()
	err := h.session.InteractionRespond(inv.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	metrics.ObserveDiscordRequest("interaction_respond", start, err)
	if err == nil {
		inv.responded = true
	}
	return err
}

func userOf(in *discordgo.Interaction) *discordgo.User {
	if in.Member != nil && in.Member.User != nil {
		return in.Member.User
	}
	if in.User != nil {
		return in.User
	}
	return &discordgo.User{}
}

func isUnknownChannel(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownChannel {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
