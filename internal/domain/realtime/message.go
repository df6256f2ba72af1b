package realtime

// Типы сообщений websocket-потока.
const (
	MessageSubscribed = "subscribed"
	MessageChange     = "change"
)

// Message - кадр, который сервер отправляет подписчику.
type Message struct {
	Type   string  `json:"type"`
	Table  string  `json:"table"`
	Change *Change `json:"change,omitempty"`
}
