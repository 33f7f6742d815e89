package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	app "fiber-inspector/internal/application"
	"fiber-inspector/internal/container"
	"fiber-inspector/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для проверки торцов оптического волокна.

📸 Отправьте снимок торца с микроскопа, и я оценю геометрию и найду дефекты.

📋 Команды:
/check — начать проверку торца
/params — эталонные параметры
/last — последняя проверка
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /check
2️⃣ Пришлите снимок торца (лучше файлом, без сжатия)
3️⃣ Вы получите вердикт, отчёт и снимок с разметкой

🎨 Разметка:
• зелёная окружность — оболочка, синяя — сердцевина
• рамки дефектов: оранжевая — царапина, красная — скол,
  пурпурная — трещина, голубая — загрязнение

⚙️ /params 0.8 5 — задать эталонное отношение сердцевина/оболочка
и предел суммарной тяжести дефектов

📋 Команды:
/check — начать проверку
/last — последняя проверка
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте снимок торца волокна."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Чтобы проверить волокно, отправьте /check и затем снимок торца."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Анализирую снимок..."
	msgBusy            = "⏳ Предыдущий снимок ещё обрабатывается."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другой снимок."
	msgNoInspections   = "📭 Проверок пока не было. Отправьте /check."
	msgParamsUsage     = "⚙️ Использование: /params <эталонное отношение> <предел тяжести>, например /params 0.8 5"
	msgParamsInvalid   = "⚠️ Недопустимые параметры: отношение должно быть > 0, предел — не меньше 0."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
	logger    logrus.FieldLogger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, logger logrus.FieldLogger) (*Bot, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.WithField("account", api.Self.UserName).Info("telegram bot authorized")

	return &Bot{
		api:       api,
		container: c,
		logger:    logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	users := b.container.UserService
	user, err := users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.logger.WithError(err).Error("failed to get user")
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	fileID, ok := imageFileID(msg)
	if !ok {
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
		return
	}

	switch user.State {
	case entity.StateProcessing:
		b.sendMessage(msg.Chat.ID, msgBusy)
	case entity.StateAwaitingPhoto:
		b.handlePhoto(ctx, msg, user, fileID)
	default:
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.container.UserService
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := users.Cancel(ctx, user.ID, chatID); err != nil {
			b.logger.WithError(err).Error("failed to reset user")
		}
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		if _, err := users.BeginCheck(ctx, user.ID, chatID); err != nil {
			b.logger.WithError(err).Error("failed to begin check")
			return
		}
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "cancel":
		if _, err := users.Cancel(ctx, user.ID, chatID); err != nil {
			b.logger.WithError(err).Error("failed to cancel")
		}
		b.sendMessage(chatID, msgCancelled)

	case "params":
		b.handleParams(chatID, msg.CommandArguments())

	case "last":
		b.handleLast(ctx, user, chatID)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handleParams показывает или меняет эталонные параметры
func (b *Bot) handleParams(chatID int64, args string) {
	svc := b.container.InspectionService
	if strings.TrimSpace(args) == "" {
		b.sendMessage(chatID, formatParams(svc.Params()))
		return
	}

	ideal, maxDefects, err := parseParams(args)
	if err != nil {
		b.sendMessage(chatID, msgParamsUsage)
		return
	}
	if err := svc.SetReferenceParameters(ideal, maxDefects); err != nil {
		b.sendMessage(chatID, msgParamsInvalid)
		return
	}
	b.sendMessage(chatID, "✅ Параметры обновлены.\n\n"+formatParams(svc.Params()))
}

// handleLast отправляет отчёт о последней проверке
func (b *Bot) handleLast(ctx context.Context, user *entity.User, chatID int64) {
	rec, err := b.container.InspectionService.Last(ctx, user.ID, chatID)
	if err != nil {
		if !errors.Is(err, app.ErrNoInspections) {
			b.logger.WithError(err).Error("failed to load last inspection")
		}
		b.sendMessage(chatID, msgNoInspections)
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("🗂 %s\n%s\n\n%s",
		rec.ID, rec.Timestamp.Format("2006-01-02 15:04:05"), rec.Result.Summary))
}

// handlePhoto скачивает снимок, анализирует его и отправляет разметку
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string) {
	b.sendMessage(msg.Chat.ID, msgProcessing)
	log := b.logger.WithField("user", user.ID)

	data, err := b.downloadFile(fileID)
	if err != nil {
		log.WithError(err).Error("failed to download photo")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.container.InspectionService.ProcessPhoto(ctx, user, data)
	if err != nil {
		log.WithError(err).Warn("failed to process photo")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  "fiber_" + out.Record.ID + ".jpg",
		Bytes: out.Annotated,
	})
	photo.Caption = caption(out.Record.Result)
	if _, err := b.api.Send(photo); err != nil {
		log.WithError(err).Error("failed to send annotated photo")
	}
	b.sendMessage(msg.Chat.ID, out.Record.Result.Summary)
}

// imageFileID возвращает файл снимка: самое большое фото или документ-изображение
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// parseParams разбирает аргументы "/params <ideal> <max>"
func parseParams(args string) (float64, float64, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 arguments, got %d", len(fields))
	}
	ideal, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("ideal ratio: %w", err)
	}
	maxDefects, err := strconv.ParseFloat(strings.ReplaceAll(fields[1], ",", "."), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("max defects: %w", err)
	}
	return ideal, maxDefects, nil
}

func formatParams(p entity.Params) string {
	return fmt.Sprintf("⚙️ Эталонное отношение: %.3f\nПредел суммарной тяжести: %.2f\nПлощадь дефекта: (%.0f, %.0f] пикс.",
		p.IdealCoreCladRatio, p.MaxAllowedDefects, p.MinDefectArea, p.MaxDefectArea)
}

// caption краткая подпись к снимку с разметкой
func caption(r *entity.AnalysisResult) string {
	verdict := "❌ Брак"
	if r.Acceptable {
		verdict = "✅ Годен"
	}
	return fmt.Sprintf("%s\nКачество: %.2f · отношение %.3f · дефектов: %d",
		verdict, r.OverallQuality, r.CoreCladRatio, len(r.Defects))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.WithError(err).Error("failed to send message")
	}
}
