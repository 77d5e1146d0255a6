// Package jwt реализует генерацию и парсинг JWT токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов с subject=username.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"errors"
	"time"
)

// Ошибки разбора токена. Вызывающая сторона различает их для корректного
// сообщения клиенту, все три означают отказ в аутентификации.
var (
	// ErrExpiredToken токен корректен, но срок действия истёк
	ErrExpiredToken = errors.New("token has expired")
	// ErrMalformedToken строка не является структурно корректным JWT
	ErrMalformedToken = errors.New("token is malformed")
	// ErrInvalidToken подпись не сошлась или claims не прошли проверку
	ErrInvalidToken = errors.New("token is invalid")
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создает токен с subject=username
	GenerateToken(username string) (string, error)
	// ParseToken возвращает *CustomClaims с username
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
