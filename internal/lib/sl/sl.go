// Package sl содержит мелкие помощники для slog.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут с ключом "error", чтобы все записи
// лога об ошибках выглядели одинаково:
//
//	log.Error("create product", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
