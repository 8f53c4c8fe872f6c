package notifier

import (
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements Notifier on top of gopkg.in/telebot.v3.
// The bot is send-only and constructed offline, so startup never waits
// on the Telegram API.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(token string) (*TelebotAdapter, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, err
	}
	return &TelebotAdapter{bot: bot}, nil
}

func (a *TelebotAdapter) Send(chatID int64, text string) error {
	_, err := a.bot.Send(&telebot.User{ID: chatID}, text)
	return err
}
