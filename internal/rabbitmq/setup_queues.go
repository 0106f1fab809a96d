package rabbitmq

// QueueConfig описывает очередь и ее ключ маршрутизации в exchange "notifications".
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// PasswordChangedQueue — очередь подтверждений смены пароля.
const PasswordChangedQueue = "password_changed_queue"

// PasswordChangedRoutingKey — ключ маршрутизации подтверждений смены пароля.
const PasswordChangedRoutingKey = "password.changed"

// GetNotificationQueues возвращает очереди, которые должен обслуживать sender.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: PasswordChangedQueue, RoutingKey: PasswordChangedRoutingKey},
	}
}
