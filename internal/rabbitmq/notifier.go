package rabbitmq

import (
	"github.com/streadway/amqp"

	librabbitmq "github.com/magabrotheeeer/account-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// Notifier публикует уведомления учетных записей в exchange "notifications".
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает новый Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// PublishPasswordChanged ставит в очередь подтверждение смены пароля.
func (n *Notifier) PublishPasswordChanged(info models.PasswordChangedInfo) error {
	return librabbitmq.PublishMessage(n.ch, "notifications", PasswordChangedRoutingKey, info)
}
